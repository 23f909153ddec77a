package cases

import (
	"context"
	"fmt"

	"github.com/cjmtools/caseintake/internal/dbx"
	"github.com/cjmtools/caseintake/internal/models"
)

// PostgresRepository implements case storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append inserts one record. IDs are assigned by the service layer, so a
// conflict is a programming error and surfaces as a plain DB error.
func (r *PostgresRepository) Append(ctx context.Context, record *models.CaseRecord) error {
	query := `
		INSERT INTO cases (id, name, case_number, crime_number, forward_date, manual_note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	res, err := r.db.ExecContext(ctx, query,
		record.ID, record.Name, record.CaseNumber, record.CrimeNumber, record.ForwardDate, record.ManualNote, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// SelectAll returns every record. Ordering is left to the consumers.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]models.CaseRecord, error) {
	query := `SELECT id, name, case_number, crime_number, forward_date, manual_note, created_at FROM cases`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select cases: %w", err)
	}
	defer rows.Close()

	var result []models.CaseRecord
	for rows.Next() {
		var item models.CaseRecord
		if err := rows.Scan(
			&item.ID, &item.Name, &item.CaseNumber, &item.CrimeNumber, &item.ForwardDate,
			&item.ManualNote, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
