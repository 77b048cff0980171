// Package repotest opens migrated SQLite databases for tests.
package repotest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/vaxscheduler/internal/database"
	"github.com/dmitrijs2005/vaxscheduler/internal/migrations"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// OpenSQLite returns a migrated database in a fresh file under t.TempDir(),
// configured the same way the scheduler configures it.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()
	return OpenSQLiteAt(t, filepath.Join(t.TempDir(), "scheduler.db"))
}

// OpenSQLiteAt opens (and migrates) the database file at path. Several
// handles on the same path behave like separate scheduler processes.
func OpenSQLiteAt(t testing.TB, path string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", database.SQLiteDSN(path))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db, migrations.SQLite))
	return db
}
