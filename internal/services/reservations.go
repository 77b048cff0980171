package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/repomanager"
	"github.com/dmitrijs2005/vaxscheduler/internal/timex"
)

// Coordinator books appointments.
type Coordinator interface {
	// Reserve matches the patient with the first free caregiver (by username)
	// on date and takes one dose of vaccine, all in one transaction.
	//
	// Errors: common.ErrNoCaregiverAvailable when no slot is free,
	// common.ErrInsufficientDoses when the vaccine is unknown or out of
	// doses. Nothing changes on error.
	Reserve(ctx context.Context, patient string, date time.Time, vaccine string) (*models.AppointmentSummary, error)
	// ListFor returns the appointments of the identity, ordered by id.
	ListFor(ctx context.Context, identity *models.Identity) ([]models.AppointmentSummary, error)
}

type coordinator struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	policy dbx.RetryPolicy
	log    logging.Logger
}

// NewCoordinator builds a Coordinator. Transactions that hit a lock or
// serialization conflict are re-run according to policy.
func NewCoordinator(db *sql.DB, rm repomanager.RepositoryManager, policy dbx.RetryPolicy, log logging.Logger) Coordinator {
	return &coordinator{db: db, rm: rm, policy: policy, log: log}
}

func (c *coordinator) Reserve(ctx context.Context, patient string, date time.Time, vaccine string) (*models.AppointmentSummary, error) {
	if patient == "" || vaccine == "" || date.IsZero() {
		return nil, common.ErrInvalidArguments
	}
	date = timex.Day(date)

	log := c.log.With("patient", patient, "date", timex.FormatDate(date), "vaccine", vaccine)

	policy := c.policy
	policy.OnRetry = func(attempt int, err error) {
		log.Warn(ctx, "reservation conflict, retrying", "attempt", attempt, "error", err)
	}

	var summary models.AppointmentSummary

	err := dbx.WithTxRetry(ctx, c.db, nil, policy, func(ctx context.Context, tx dbx.DBTX) error {
		slots := c.rm.Availabilities(tx)

		caregiver, err := slots.ClaimFirst(ctx, date)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrNoCaregiverAvailable
			}
			return fmt.Errorf("claim slot: %w", err)
		}

		if err := c.rm.Vaccines(tx).Consume(ctx, vaccine, 1); err != nil {
			if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrInsufficientDoses) {
				return common.ErrInsufficientDoses
			}
			return fmt.Errorf("consume dose: %w", err)
		}

		appointment, err := c.rm.Appointments(tx).Create(ctx, &models.Appointment{
			Date:              date,
			CaregiverUsername: caregiver,
			PatientUsername:   patient,
			VaccineName:       vaccine,
		})
		if err != nil {
			return fmt.Errorf("record appointment: %w", err)
		}

		if err := slots.Delete(ctx, date, caregiver); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrAlreadyBooked
			}
			return fmt.Errorf("consume slot: %w", err)
		}

		summary = appointment.Summary()
		return nil
	})
	if err != nil {
		log.Info(ctx, "reservation failed", "error", err)
		return nil, err
	}

	log.Info(ctx, "appointment reserved", "id", summary.ID, "caregiver", summary.CaregiverUsername)
	return &summary, nil
}

func (c *coordinator) ListFor(ctx context.Context, identity *models.Identity) ([]models.AppointmentSummary, error) {
	if identity == nil {
		return nil, common.ErrNoActiveSession
	}

	list, err := c.rm.Appointments(c.db).ListFor(ctx, identity.Kind, identity.Username)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	result := make([]models.AppointmentSummary, 0, len(list))
	for i := range list {
		result = append(result, list[i].Summary())
	}
	return result, nil
}
