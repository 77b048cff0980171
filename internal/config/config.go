package config

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	sqliteFileName = "scheduler.db"
)

// Config holds runtime settings for the scheduler REPL.
//
// Fields:
//   - DatabaseDriver: "sqlite" (embedded, default) or "postgres".
//   - DatabaseDSN: connection string; for sqlite it defaults to a file in DataDir.
//   - DataDir: directory holding the sqlite database file.
//   - RequestTimeout: deadline applied to every REPL command.
//   - RetryMaxAttempts, RetryBaseDelay: bound retries of conflicting transactions.
//   - LogLevel: debug, info, warn or error.
//   - StorageErrorsFatal: exit on a storage error instead of returning to the prompt.
type Config struct {
	DatabaseDriver     string
	DatabaseDSN        string
	DataDir            string
	RequestTimeout     time.Duration
	RetryMaxAttempts   int
	RetryBaseDelay     time.Duration
	LogLevel           string
	StorageErrorsFatal bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = ""
	c.DataDir = "data"
	c.RequestTimeout = 10 * time.Second
	c.RetryMaxAttempts = 5
	c.RetryBaseDelay = 20 * time.Millisecond
	c.LogLevel = "warn"
	c.StorageErrorsFatal = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate rejects settings the scheduler cannot run with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("postgres driver needs a DSN (-d)")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.DatabaseDriver)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.RetryMaxAttempts)
	}
	if c.RetryBaseDelay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %s", c.RetryBaseDelay)
	}
	return nil
}

// SQLitePath is the database file used when no DSN is configured.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, sqliteFileName)
}
