package appointments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/models"
)

// Repository records booked appointments. Appointments are never updated or
// deleted.
type Repository interface {
	// Create inserts the appointment and fills in the generated ID and CreatedAt.
	Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error)
	// ListFor returns the appointments of a patient or a caregiver, oldest first.
	ListFor(ctx context.Context, kind models.Kind, username string) ([]models.Appointment, error)
}

var partyColumns = map[models.Kind]string{
	models.KindPatient:   "patient_username",
	models.KindCaregiver: "caregiver_username",
}

func columnFor(kind models.Kind) (string, error) {
	c, ok := partyColumns[kind]
	if !ok {
		return "", fmt.Errorf("unknown identity kind %d", kind)
	}
	return c, nil
}
