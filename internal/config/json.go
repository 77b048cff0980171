package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vaxscheduler/internal/flagx"
	"github.com/dmitrijs2005/vaxscheduler/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration, so they may be strings like "10s" or
// integer nanoseconds. Pointer fields tell "absent" apart from zero.
type JsonConfig struct {
	DatabaseDriver     string          `json:"database_driver"`
	DatabaseDSN        string          `json:"database_dsn"`
	DataDir            string          `json:"data_dir"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	RetryMaxAttempts   *int            `json:"retry_max_attempts"`
	RetryBaseDelay     *timex.Duration `json:"retry_base_delay"`
	LogLevel           string          `json:"log_level"`
	StorageErrorsFatal *bool           `json:"storage_errors_fatal"`
}

// parseJson overlays Config with values from the JSON file named by -c or
// -config. Only keys present in the file are copied. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.DatabaseDriver != "" {
		cfg.DatabaseDriver = jc.DatabaseDriver
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RetryMaxAttempts != nil {
		cfg.RetryMaxAttempts = *jc.RetryMaxAttempts
	}
	if jc.RetryBaseDelay != nil {
		cfg.RetryBaseDelay = jc.RetryBaseDelay.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.StorageErrorsFatal != nil {
		cfg.StorageErrorsFatal = *jc.StorageErrorsFatal
	}
}
