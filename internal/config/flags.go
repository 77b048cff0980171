package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-t string   database driver: sqlite or postgres
//	-d string   database DSN
//	-p string   data directory for the sqlite file
//	-w int      request timeout (in seconds)
//	-n int      max attempts for a conflicting transaction
//	-b int      base retry delay (in milliseconds)
//	-l string   log level
//	-k          keep going after storage errors
//
// Only the flags above are picked out of os.Args (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-t", "-d", "-p", "-w", "-n", "-b", "-l"}, "-k")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDriver, "t", cfg.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.DataDir, "p", cfg.DataDir, "data directory for the sqlite database")
	requestTimeout := fs.Int("w", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.RetryMaxAttempts, "n", cfg.RetryMaxAttempts, "max attempts for a conflicting transaction")
	retryBaseDelay := fs.Int("b", int(cfg.RetryBaseDelay.Milliseconds()), "base retry delay (in milliseconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	keepGoing := fs.Bool("k", false, "keep the REPL running after storage errors")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.RetryBaseDelay = time.Duration(*retryBaseDelay) * time.Millisecond
	if *keepGoing {
		cfg.StorageErrorsFatal = false
	}
}
