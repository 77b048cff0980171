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

// SQLiteRepository stores dates as yyyy-mm-dd text.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, slot models.AvailabilitySlot) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO availabilities (slot_date, caregiver_username) VALUES (?, ?)`,
		timex.FormatDate(slot.Date), slot.CaregiverUsername)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("failed to insert availability: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListCaregivers(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT caregiver_username FROM availabilities WHERE slot_date = ? ORDER BY caregiver_username`,
		timex.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("failed to select availabilities: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		result = append(result, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate availability rows: %w", err)
	}

	return result, nil
}

// ClaimFirst relies on the transaction having been started with BEGIN
// IMMEDIATE: the write lock is already held, so the row cannot be taken by
// another connection before it is deleted.
func (r *SQLiteRepository) ClaimFirst(ctx context.Context, date time.Time) (string, error) {
	var username string
	err := r.db.QueryRowContext(ctx,
		`SELECT caregiver_username FROM availabilities WHERE slot_date = ? ORDER BY caregiver_username LIMIT 1`,
		timex.FormatDate(date)).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to claim availability: %w", err)
	}
	return username, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, date time.Time, caregiver string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM availabilities WHERE slot_date = ? AND caregiver_username = ?`,
		timex.FormatDate(date), caregiver)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	if n != 1 {
		return common.ErrorNotFound
	}
	return nil
}
