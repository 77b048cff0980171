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

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Identities(db dbx.DBTX) identities.Repository {
	return identities.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Vaccines(db dbx.DBTX) vaccines.Repository {
	return vaccines.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Availabilities(db dbx.DBTX) availabilities.Repository {
	return availabilities.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Appointments(db dbx.DBTX) appointments.Repository {
	return appointments.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Up(ctx, db, migrations.Postgres)
}
