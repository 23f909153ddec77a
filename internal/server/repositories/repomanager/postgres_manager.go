// Package repomanager wires repositories to a database handle and applies
// schema migrations at startup.
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/cjmtools/caseintake/internal/dbx"
	"github.com/cjmtools/caseintake/internal/server/migrations"
	"github.com/cjmtools/caseintake/internal/server/repositories/cases"
)

// Test seams for goose package-level calls.
var (
	gooseSetDialect = goose.SetDialect
	gooseUpContext  = goose.UpContext
)

// RepositoryManager builds repositories over a shared database handle.
type RepositoryManager interface {
	Cases(db dbx.DBTX) cases.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}

func (m *PostgresRepositoryManager) Cases(db dbx.DBTX) cases.Repository {
	return cases.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := gooseSetDialect("pgx"); err != nil {
		return err
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
