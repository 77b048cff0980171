package availabilities

import (
	"context"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/models"
)

// Repository stores (date, caregiver) availability slots.
type Repository interface {
	// Create publishes a slot. Returns common.ErrorAlreadyExists if the
	// caregiver already has a slot on that date.
	Create(ctx context.Context, slot models.AvailabilitySlot) error
	// ListCaregivers returns the caregivers free on date, ordered by username.
	ListCaregivers(ctx context.Context, date time.Time) ([]string, error)
	// ClaimFirst picks the first free caregiver on date by username and
	// locks the slot for the rest of the transaction. It must run inside a
	// transaction. Returns common.ErrorNotFound if no slot is left.
	ClaimFirst(ctx context.Context, date time.Time) (string, error)
	// Delete consumes a slot. Returns common.ErrorNotFound if it is gone.
	Delete(ctx context.Context, date time.Time, caregiver string) error
}
