// Package repomanager vends repositories for the configured SQL dialect,
// bound either to the connection pool or to a running transaction, and
// applies the matching schema migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/config"
	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/appointments"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/availabilities"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/identities"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/vaccines"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Identities(db dbx.DBTX) identities.Repository
	Vaccines(db dbx.DBTX) vaccines.Repository
	Availabilities(db dbx.DBTX) availabilities.Repository
	Appointments(db dbx.DBTX) appointments.Repository
}

// New returns the manager for a config.Driver* value.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case config.DriverPostgres:
		return &PostgresRepositoryManager{}, nil
	case config.DriverSQLite:
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
