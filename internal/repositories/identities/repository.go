package identities

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/models"
)

// Repository stores patients and caregivers. Each kind has its own table,
// so usernames only need to be unique within a kind.
type Repository interface {
	// Create inserts a new identity and fills in CreatedAt.
	// Returns common.ErrorAlreadyExists if the username is taken for that kind.
	Create(ctx context.Context, identity *models.Identity) (*models.Identity, error)
	// GetByUsername returns common.ErrorNotFound for an unknown username.
	GetByUsername(ctx context.Context, kind models.Kind, username string) (*models.Identity, error)
	Exists(ctx context.Context, kind models.Kind, username string) (bool, error)
}

var tables = map[models.Kind]string{
	models.KindPatient:   "patients",
	models.KindCaregiver: "caregivers",
}

func tableFor(kind models.Kind) (string, error) {
	t, ok := tables[kind]
	if !ok {
		return "", fmt.Errorf("unknown identity kind %d", kind)
	}
	return t, nil
}
