package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/repomanager"
	"github.com/dmitrijs2005/vaxscheduler/internal/timex"
)

// Calendar publishes caregiver availability and answers "who is free on
// this date".
type Calendar interface {
	// Publish returns common.ErrDuplicateSlot if the caregiver already
	// published that date.
	Publish(ctx context.Context, caregiver string, date time.Time) error
	// FindCandidates lists free caregivers on date in ascending username order.
	FindCandidates(ctx context.Context, date time.Time) ([]string, error)
}

type calendar struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	log logging.Logger
}

func NewCalendar(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) Calendar {
	return &calendar{db: db, rm: rm, log: log}
}

func (c *calendar) Publish(ctx context.Context, caregiver string, date time.Time) error {
	if caregiver == "" || date.IsZero() {
		return common.ErrInvalidArguments
	}

	slot := models.AvailabilitySlot{Date: timex.Day(date), CaregiverUsername: caregiver}
	if err := c.rm.Availabilities(c.db).Create(ctx, slot); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrDuplicateSlot
		}
		return fmt.Errorf("publish availability: %w", err)
	}

	c.log.Info(ctx, "availability published", "caregiver", caregiver, "date", timex.FormatDate(date))
	return nil
}

func (c *calendar) FindCandidates(ctx context.Context, date time.Time) ([]string, error) {
	list, err := c.rm.Availabilities(c.db).ListCaregivers(ctx, timex.Day(date))
	if err != nil {
		return nil, fmt.Errorf("find caregivers: %w", err)
	}
	return list, nil
}
