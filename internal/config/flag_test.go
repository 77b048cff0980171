package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-t", "postgres", "-d", "postgres://x", "-p", "/tmp/d", "-w", "3", "-n", "9", "-b", "5", "-l", "debug", "-k"},
			expected: &Config{
				DatabaseDriver:     "postgres",
				DatabaseDSN:        "postgres://x",
				DataDir:            "/tmp/d",
				RequestTimeout:     3 * time.Second,
				RetryMaxAttempts:   9,
				RetryBaseDelay:     5 * time.Millisecond,
				LogLevel:           "debug",
				StorageErrorsFatal: false,
			},
		},
		{
			name:     "no flags keep defaults",
			args:     []string{"cmd"},
			expected: defaults(),
		},
		{
			name: "config flag is ignored here",
			args: []string{"cmd", "-c", "cfg.json", "-l", "error"},
			expected: func() *Config {
				c := defaults()
				c.LogLevel = "error"
				return c
			}(),
		},
		{name: "incorrect timeout", args: []string{"cmd", "-w", "abc"}, expectPanic: true},
		{name: "incorrect attempts", args: []string{"cmd", "-n", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := defaults()

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
