// Package database opens the scheduler's *sql.DB for the configured driver
// and checks that it is reachable.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/config"
	"github.com/dmitrijs2005/vaxscheduler/internal/filex"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"
)

const (
	pgMaxOpenConns    = 20
	pgMaxIdleConns    = 5
	pgConnMaxLifetime = 30 * time.Minute

	sqliteBusyTimeout = 5 * time.Second

	pingAttempts = 5
	pingDelay    = 200 * time.Millisecond
)

// SQLiteDSN builds a modernc.org/sqlite DSN for the database file at path.
//
// Transactions start with BEGIN IMMEDIATE, so a writer takes the database
// lock up front and two processes never both read the same free slot.
// Waiting writers block for up to sqliteBusyTimeout before SQLITE_BUSY.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_txlock=immediate&_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)",
		path, sqliteBusyTimeout.Milliseconds())
}

// driverName maps the configured driver to the database/sql driver name.
func driverName(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return "pgx", nil
	case config.DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unknown database driver %q", driver)
	}
}

// dsnFor resolves the connection string. For sqlite a plain DSN is taken as
// a file path; a "file:" URI is used verbatim.
func dsnFor(cfg *config.Config) (string, error) {
	if cfg.DatabaseDriver != config.DriverSQLite {
		return cfg.DatabaseDSN, nil
	}

	if strings.HasPrefix(cfg.DatabaseDSN, "file:") {
		return cfg.DatabaseDSN, nil
	}

	path := cfg.DatabaseDSN
	if path == "" {
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return "", fmt.Errorf("data dir: %w", err)
		}
		path = filepath.Join(dir, filepath.Base(cfg.SQLitePath()))
	}
	return SQLiteDSN(path), nil
}

// Open opens the database, applies pool limits and pings it with a bounded
// retry, so a PostgreSQL server that is still starting is waited for.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*sql.DB, error) {
	name, err := driverName(cfg.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	dsn, err := dsnFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.DatabaseDriver == config.DriverSQLite {
		// one writer per process; cross-process access is serialized by the file lock
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(pgMaxOpenConns)
		db.SetMaxIdleConns(pgMaxIdleConns)
		db.SetConnMaxLifetime(pgConnMaxLifetime)
	}

	if err := ping(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug(ctx, "database ready", "driver", cfg.DatabaseDriver)
	return db, nil
}

func ping(ctx context.Context, db *sql.DB, log logging.Logger) error {
	b := retry.WithMaxRetries(pingAttempts-1, retry.NewConstant(pingDelay))

	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			log.Warn(ctx, "database ping failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}
