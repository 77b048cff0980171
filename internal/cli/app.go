package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/vaxscheduler/internal/config"
	"github.com/dmitrijs2005/vaxscheduler/internal/database"
	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/repomanager"
	"github.com/dmitrijs2005/vaxscheduler/internal/services"
	"github.com/dmitrijs2005/vaxscheduler/internal/session"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	creds    services.CredentialStore
	ledger   services.InventoryLedger
	calendar services.Calendar
	coord    services.Coordinator
	session  *session.Session
	logger   logging.Logger
	in       io.Reader
}

// NewApp opens the configured database, applies pending migrations and
// builds the services on top of it.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := database.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.New(cfg.DatabaseDriver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return newApp(cfg, db, rm, logger), nil
}

func newApp(cfg *config.Config, db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *App {
	policy := dbx.RetryPolicy{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
	}

	return &App{
		config:   cfg,
		db:       db,
		creds:    services.NewCredentialStore(db, rm, logger),
		ledger:   services.NewInventoryLedger(db, rm, logger),
		calendar: services.NewCalendar(db, rm, logger),
		coord:    services.NewCoordinator(db, rm, policy, logger),
		session:  session.New(),
		logger:   logger,
		in:       os.Stdin,
	}
}

// Run reads commands until quit or end of input. The banner and the prompt
// are only shown when reading from a terminal.
func (a *App) Run(ctx context.Context) {
	interactive := false
	if f, ok := a.in.(*os.File); ok {
		interactive = isTerminal(int(f.Fd()))
	}

	if interactive {
		printlnFn()
		printlnFn("Welcome to the COVID-19 Vaccine Reservation Scheduling Application!")
		printlnFn()
		printlnFn(helpText)
		printlnFn()
	}

	prompt := func() string {
		if interactive {
			return "> "
		}
		return ""
	}

	runREPL(ctx, a, prompt, bufio.NewScanner(a.in))
}

func (a *App) Close() error {
	return a.db.Close()
}
