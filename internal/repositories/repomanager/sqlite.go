package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/migrations"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/appointments"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/availabilities"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/identities"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/vaccines"
)

// SQLiteRepositoryManager vends SQLite-backed repository implementations.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Identities(db dbx.DBTX) identities.Repository {
	return identities.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Vaccines(db dbx.DBTX) vaccines.Repository {
	return vaccines.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Availabilities(db dbx.DBTX) availabilities.Repository {
	return availabilities.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Appointments(db dbx.DBTX) appointments.Repository {
	return appointments.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Up(ctx, db, migrations.SQLite)
}
