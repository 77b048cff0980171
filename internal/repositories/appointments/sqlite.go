package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/timex"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error) {
	createdAt := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (slot_date, caregiver_username, patient_username, vaccine_name, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, timex.FormatDate(a.Date), a.CaregiverUsername, a.PatientUsername, a.VaccineName, createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read appointment id: %w", err)
	}

	a.ID = id
	a.Date = timex.Day(a.Date)
	a.CreatedAt = createdAt
	return a, nil
}

func (r *SQLiteRepository) ListFor(ctx context.Context, kind models.Kind, username string) ([]models.Appointment, error) {
	column, err := columnFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, slot_date, caregiver_username, patient_username, vaccine_name, created_at
		FROM appointments WHERE %s = ? ORDER BY id`, column)

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to select appointments: %w", err)
	}
	defer rows.Close()

	var result []models.Appointment
	for rows.Next() {
		var (
			a         models.Appointment
			date      string
			createdAt string
		)
		if err := rows.Scan(&a.ID, &date, &a.CaregiverUsername, &a.PatientUsername, &a.VaccineName, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		if a.Date, err = time.Parse(timex.ISODate, date); err != nil {
			return nil, fmt.Errorf("bad slot_date in appointment %d: %w", a.ID, err)
		}
		if a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("bad created_at in appointment %d: %w", a.ID, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointment rows: %w", err)
	}

	return result, nil
}
