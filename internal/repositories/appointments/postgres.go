package appointments

import (
	"context"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error) {
	query :=
		`INSERT INTO appointments (slot_date, caregiver_username, patient_username, vaccine_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`

	a.Date = timex.Day(a.Date)
	err := r.db.QueryRowContext(ctx, query,
		a.Date, a.CaregiverUsername, a.PatientUsername, a.VaccineName).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) ListFor(ctx context.Context, kind models.Kind, username string) ([]models.Appointment, error) {
	column, err := columnFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT id, slot_date, caregiver_username, patient_username, vaccine_name, created_at
		 FROM appointments
		 WHERE %s = $1
		 ORDER BY id`, column)

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Appointment
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(&a.ID, &a.Date, &a.CaregiverUsername, &a.PatientUsername, &a.VaccineName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		a.Date = timex.Day(a.Date)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
