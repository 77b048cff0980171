package repomanager

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vaxscheduler/internal/config"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/appointments"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/availabilities"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/identities"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/vaccines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestNew(t *testing.T) {
	m, err := New(config.DriverPostgres)
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)

	m, err = New(config.DriverSQLite)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepositoryManager{}, m)

	_, err = New("oracle")
	require.Error(t, err)
}

func TestPostgresFactories_ReturnConcreteRepos(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	assert.IsType(t, &identities.PostgresRepository{}, m.Identities(db))
	assert.IsType(t, &vaccines.PostgresRepository{}, m.Vaccines(db))
	assert.IsType(t, &availabilities.PostgresRepository{}, m.Availabilities(db))
	assert.IsType(t, &appointments.PostgresRepository{}, m.Appointments(db))
}

func TestSQLiteFactories_ReturnConcreteRepos(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := &SQLiteRepositoryManager{}

	assert.IsType(t, &identities.SQLiteRepository{}, m.Identities(db))
	assert.IsType(t, &vaccines.SQLiteRepository{}, m.Vaccines(db))
	assert.IsType(t, &availabilities.SQLiteRepository{}, m.Availabilities(db))
	assert.IsType(t, &appointments.SQLiteRepository{}, m.Appointments(db))
}

func TestSQLiteRunMigrations_ReposWorkAfterwards(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	m := &SQLiteRepositoryManager{}
	require.NoError(t, m.RunMigrations(ctx, db))

	total, err := m.Vaccines(db).AddDoses(ctx, "pfizer", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
