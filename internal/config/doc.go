// Package config loads runtime configuration for the scheduler REPL.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "database_driver": "postgres",
//	  "database_dsn": "postgres://scheduler@localhost:5432/scheduler",
//	  "data_dir": "data",
//	  "request_timeout": "10s",
//	  "retry_max_attempts": 5,
//	  "retry_base_delay": "20ms",
//	  "log_level": "info",
//	  "storage_errors_fatal": false
//	}
//
// Environment variables are not read.
package config
