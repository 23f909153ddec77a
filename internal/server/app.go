// Package server initializes and runs the case storage server. It selects a
// storage backend, applies migrations, handles graceful shutdown, and serves
// the intake HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cjmtools/caseintake/internal/logging"
	"github.com/cjmtools/caseintake/internal/server/api"
	"github.com/cjmtools/caseintake/internal/server/cases"
	"github.com/cjmtools/caseintake/internal/server/config"
	repo "github.com/cjmtools/caseintake/internal/server/repositories/cases"
	"github.com/cjmtools/caseintake/internal/server/repositories/repomanager"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	caseService *cases.Service
	db          *sql.DB
}

// NewApp wires the storage backend and the service layer. An empty
// DatabaseDSN selects in-memory storage, which loses data on restart and is
// meant for development.
func NewApp(c *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	var caseRepo repo.Repository
	var db *sql.DB

	if c.DatabaseDSN == "" {
		logger.Warn(context.Background(), "no database DSN, using in-memory storage")
		caseRepo = repo.NewInMemoryRepository()
	} else {
		var err error
		db, err = sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}

		m, err := repomanager.NewPostgresRepositoryManager()
		if err != nil {
			return nil, fmt.Errorf("repository manager init error: %w", err)
		}
		if err := m.RunMigrations(context.Background(), db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		caseRepo = m.Cases(db)
	}

	cs := cases.NewService(caseRepo, logger)

	return &App{config: c, logger: logger, caseService: cs, db: db}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until the context is cancelled or a termination signal
// arrives, then shuts the HTTP server down gracefully.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	handler := api.NewHandler(
		app.caseService,
		app.config.PasscodeHash,
		[]byte(app.config.SecretKey),
		app.config.AccessTokenValidityDuration,
		app.logger,
	)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: handler.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "server error", "error", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}

	app.logger.Info(ctx, "Server stopped")
}
