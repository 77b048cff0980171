package vaccines

import (
	"context"

	"github.com/dmitrijs2005/vaxscheduler/internal/models"
)

// Repository keeps per-vaccine dose counts. Counts never go below zero.
type Repository interface {
	// AddDoses creates the vaccine if needed, adds doses and returns the new count.
	// It returns common.ErrInvalidDoses, changing nothing, when the count
	// would pass models.MaxDoses.
	AddDoses(ctx context.Context, name string, doses int) (int, error)
	// Consume takes n doses in a single conditional update. It returns
	// common.ErrorNotFound for an unknown vaccine and
	// common.ErrInsufficientDoses when fewer than n are left.
	Consume(ctx context.Context, name string, n int) error
	Get(ctx context.Context, name string) (*models.VaccineStock, error)
	// List returns every vaccine ordered by name.
	List(ctx context.Context) ([]models.VaccineStock, error)
}
