package availabilities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/timex"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, slot models.AvailabilitySlot) error {
	query :=
		`INSERT INTO availabilities (slot_date, caregiver_username)
		 VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, timex.Day(slot.Date), slot.CaregiverUsername); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListCaregivers(ctx context.Context, date time.Time) ([]string, error) {
	query :=
		`SELECT caregiver_username FROM availabilities
		 WHERE slot_date = $1
		 ORDER BY caregiver_username`

	rows, err := r.db.QueryContext(ctx, query, timex.Day(date))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// ClaimFirst skips slots already locked by concurrent reservations, so each
// of them gets a different caregiver instead of queueing on the same row.
// When every slot is locked it waits on the first one instead: the holder
// may roll back and leave the slot free.
func (r *PostgresRepository) ClaimFirst(ctx context.Context, date time.Time) (string, error) {
	username, err := r.claim(ctx, date, "FOR UPDATE SKIP LOCKED")
	if errors.Is(err, common.ErrorNotFound) {
		return r.claim(ctx, date, "FOR UPDATE")
	}
	return username, err
}

func (r *PostgresRepository) claim(ctx context.Context, date time.Time, lock string) (string, error) {
	query :=
		`SELECT caregiver_username FROM availabilities
		 WHERE slot_date = $1
		 ORDER BY caregiver_username
		 LIMIT 1
		 ` + lock

	var username string
	if err := r.db.QueryRowContext(ctx, query, timex.Day(date)).Scan(&username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return username, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, date time.Time, caregiver string) error {
	query :=
		`DELETE FROM availabilities
		 WHERE slot_date = $1 AND caregiver_username = $2`

	res, err := r.db.ExecContext(ctx, query, timex.Day(date), caregiver)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n != 1 {
		return common.ErrorNotFound
	}
	return nil
}
