package dbx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// openLocked returns two handles on the same database file. The first one
// holds a write lock until release is called; the second one begins
// immediate transactions and fails fast with SQLITE_BUSY while the lock is held.
func openLocked(t *testing.T) (db *sql.DB, release func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retry.db")

	holder, err := sql.Open("sqlite", "file:"+path+"?_txlock=immediate")
	require.NoError(t, err)
	t.Cleanup(func() { _ = holder.Close() })
	_, err = holder.Exec(`CREATE TABLE slots (slot_date TEXT NOT NULL, caregiver TEXT NOT NULL, PRIMARY KEY (slot_date, caregiver))`)
	require.NoError(t, err)

	db, err = sql.Open("sqlite", "file:"+path+"?_txlock=immediate&_pragma=busy_timeout(0)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	lock, err := holder.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = lock.Exec(`INSERT INTO slots VALUES ('2024-03-01', 'holder')`)
	require.NoError(t, err)

	return db, func() { _ = lock.Rollback() }
}

func TestWithTxRetry_RetriesBusyUntilLockReleased(t *testing.T) {
	db, release := openLocked(t)

	var retried []int
	p := RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		OnRetry: func(attempt int, err error) {
			assert.True(t, IsTransient(err), "unexpected retry on %v", err)
			retried = append(retried, attempt)
			release()
		},
	}

	calls := 0
	err := WithTxRetry(context.Background(), db, nil, p, func(ctx context.Context, tx DBTX) error {
		calls++
		_, err := tx.ExecContext(ctx, `INSERT INTO slots VALUES ('2024-03-01', 'c1')`)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, retried)
	assert.Equal(t, 1, calls, "fn must not run while begin keeps failing")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM slots`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestWithTxRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	db, release := openLocked(t)
	defer release()

	retries := 0
	p := RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		OnRetry:     func(int, error) { retries++ },
	}

	err := WithTxRetry(context.Background(), db, nil, p, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err)
	assert.True(t, IsTransient(err), "got %v", err)
	assert.Equal(t, 2, retries)
}

func TestWithTxRetry_NonTransientReturnedImmediately(t *testing.T) {
	db := setupDB(t)
	boom := errors.New("boom")

	calls := 0
	p := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Millisecond}
	err := WithTxRetry(context.Background(), db, nil, p, func(ctx context.Context, tx DBTX) error {
		calls++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWithTxRetry_RetriesTransientFnError(t *testing.T) {
	db := setupDB(t)

	calls := 0
	p := RetryPolicy{MaxAttempts: 4, BaseDelay: time.Millisecond}
	err := WithTxRetry(context.Background(), db, nil, p, func(ctx context.Context, tx DBTX) error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO slots VALUES ('2024-03-02', 'c1')`)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, countRows(t, db))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("x"), false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"deadline", context.DeadlineExceeded, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate")))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db := setupDB(t)

	_, err := db.Exec(`INSERT INTO slots VALUES ('2024-03-01', 'c1')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO slots VALUES ('2024-03-01', 'c1')`)
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsTransient(err))
}
