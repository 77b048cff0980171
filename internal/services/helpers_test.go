package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/repomanager"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/repotest"
	"github.com/stretchr/testify/require"
)

var testPolicy = dbx.RetryPolicy{MaxAttempts: 5, BaseDelay: time.Millisecond}

var march1 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

type env struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	creds  CredentialStore
	ledger InventoryLedger
	cal    Calendar
	coord  Coordinator
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvOn(repotest.OpenSQLite(t))
}

func newEnvOn(db *sql.DB) *env {
	rm := &repomanager.SQLiteRepositoryManager{}
	log := logging.Discard()
	return &env{
		db:     db,
		rm:     rm,
		creds:  NewCredentialStore(db, rm, log),
		ledger: NewInventoryLedger(db, rm, log),
		cal:    NewCalendar(db, rm, log),
		coord:  NewCoordinator(db, rm, testPolicy, log),
	}
}

// seedIdentity inserts an identity without paying for password hashing.
func seedIdentity(t *testing.T, db *sql.DB, kind models.Kind, username string) {
	t.Helper()
	table := map[models.Kind]string{models.KindPatient: "patients", models.KindCaregiver: "caregivers"}[kind]
	_, err := db.Exec(fmt.Sprintf(`INSERT INTO %s (username, salt, hash, created_at) VALUES (?, x'00', x'00', '2024-01-01T00:00:00Z')`, table), username)
	require.NoError(t, err)
}

func (e *env) doses(t *testing.T, vaccine string) int {
	t.Helper()
	v, err := e.rm.Vaccines(e.db).Get(context.Background(), vaccine)
	require.NoError(t, err)
	return v.Doses
}

func (e *env) appointmentCount(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM appointments`).Scan(&n))
	return n
}
