package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/repomanager"
)

// InventoryLedger tracks how many doses of each vaccine are left.
type InventoryLedger interface {
	// AddDoses requires 0 < doses <= models.MaxDoses and a resulting count
	// within models.MaxDoses (common.ErrInvalidDoses otherwise).
	AddDoses(ctx context.Context, name string, doses int) (*models.VaccineStock, error)
	// Consume takes n doses or nothing. See vaccines.Repository.Consume.
	Consume(ctx context.Context, name string, n int) error
	List(ctx context.Context) ([]models.VaccineStock, error)
}

type inventoryLedger struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	log logging.Logger
}

func NewInventoryLedger(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) InventoryLedger {
	return &inventoryLedger{db: db, rm: rm, log: log}
}

func (l *inventoryLedger) AddDoses(ctx context.Context, name string, doses int) (*models.VaccineStock, error) {
	if name == "" {
		return nil, common.ErrInvalidArguments
	}
	if doses <= 0 || doses > models.MaxDoses {
		return nil, common.ErrInvalidDoses
	}

	total, err := l.rm.Vaccines(l.db).AddDoses(ctx, name, doses)
	if err != nil {
		return nil, fmt.Errorf("add doses: %w", err)
	}

	l.log.Info(ctx, "doses added", "vaccine", name, "added", doses, "total", total)
	return &models.VaccineStock{Name: name, Doses: total}, nil
}

func (l *inventoryLedger) Consume(ctx context.Context, name string, n int) error {
	if n <= 0 {
		return common.ErrInvalidDoses
	}
	return l.rm.Vaccines(l.db).Consume(ctx, name, n)
}

func (l *inventoryLedger) List(ctx context.Context) ([]models.VaccineStock, error) {
	list, err := l.rm.Vaccines(l.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vaccines: %w", err)
	}
	return list, nil
}
