package vaccines

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AddDoses(ctx context.Context, name string, doses int) (int, error) {
	if doses > models.MaxDoses {
		return 0, common.ErrInvalidDoses
	}

	query :=
		`INSERT INTO vaccines (name, doses)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET doses = vaccines.doses + EXCLUDED.doses
		 WHERE vaccines.doses <= $3 - EXCLUDED.doses
		 RETURNING doses`

	var total int
	if err := r.db.QueryRowContext(ctx, query, name, doses, models.MaxDoses).Scan(&total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrInvalidDoses
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) Consume(ctx context.Context, name string, n int) error {
	query :=
		`UPDATE vaccines SET doses = doses - $2
		 WHERE name = $1 AND doses >= $2`

	res, err := r.db.ExecContext(ctx, query, name, n)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if rows == 1 {
		return nil
	}

	if _, err := r.Get(ctx, name); err != nil {
		return err
	}
	return common.ErrInsufficientDoses
}

func (r *PostgresRepository) Get(ctx context.Context, name string) (*models.VaccineStock, error) {
	query := `SELECT name, doses FROM vaccines WHERE name = $1`

	v := &models.VaccineStock{}
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&v.Name, &v.Doses); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.VaccineStock, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, doses FROM vaccines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.VaccineStock
	for rows.Next() {
		var v models.VaccineStock
		if err := rows.Scan(&v.Name, &v.Doses); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
