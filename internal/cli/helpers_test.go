package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/vaxscheduler/internal/config"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/stretchr/testify/require"
)

// captureOutput collects every printed line until the test ends.
func captureOutput(t *testing.T) *[]string {
	t.Helper()

	lines := []string{}
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		s := strings.TrimSuffix(fmt.Sprintln(a...), "\n")
		lines = append(lines, strings.Split(s, "\n")...)
		return len(s), nil
	}
	printFn = func(a ...any) (int, error) { return 0, nil }
	t.Cleanup(func() {
		printlnFn = origPrintln
		printFn = origPrint
	})
	return &lines
}

// stubExit records exit codes instead of ending the test binary.
func stubExit(t *testing.T) *[]int {
	t.Helper()

	codes := []int{}
	orig := exitFn
	exitFn = func(code int) { codes = append(codes, code) }
	t.Cleanup(func() { exitFn = orig })
	return &codes
}

// newTestApp builds an App over a fresh sqlite database in a temp dir.
func newTestApp(t *testing.T, opts ...func(*config.Config)) *App {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = t.TempDir()
	for _, o := range opts {
		o(cfg)
	}

	app, err := NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

// script runs the given lines through the app and returns what it printed.
func script(t *testing.T, app *App, lines ...string) []string {
	t.Helper()

	out := captureOutput(t)
	app.in = strings.NewReader(strings.Join(lines, "\n") + "\n")
	app.Run(context.Background())
	return *out
}
