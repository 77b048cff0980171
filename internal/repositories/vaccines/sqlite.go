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

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) AddDoses(ctx context.Context, name string, doses int) (int, error) {
	if doses > models.MaxDoses {
		return 0, common.ErrInvalidDoses
	}

	var total int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO vaccines (name, doses) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET doses = vaccines.doses + excluded.doses
		WHERE vaccines.doses <= ? - excluded.doses
		RETURNING doses
	`, name, doses, models.MaxDoses).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		// the update was skipped: the sum would pass MaxDoses
		return 0, common.ErrInvalidDoses
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add doses of %s: %w", name, err)
	}
	return total, nil
}

func (r *SQLiteRepository) Consume(ctx context.Context, name string, n int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vaccines SET doses = doses - ? WHERE name = ? AND doses >= ?`, n, name, n)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", name, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", name, err)
	}
	if rows == 1 {
		return nil
	}

	if _, err := r.Get(ctx, name); err != nil {
		return err
	}
	return common.ErrInsufficientDoses
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*models.VaccineStock, error) {
	v := &models.VaccineStock{}
	err := r.db.QueryRowContext(ctx, `SELECT name, doses FROM vaccines WHERE name = ?`, name).Scan(&v.Name, &v.Doses)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vaccine %s: %w", name, err)
	}
	return v, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.VaccineStock, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, doses FROM vaccines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaccines: %w", err)
	}
	defer rows.Close()

	var result []models.VaccineStock
	for rows.Next() {
		var v models.VaccineStock
		if err := rows.Scan(&v.Name, &v.Doses); err != nil {
			return nil, fmt.Errorf("failed to scan vaccine row: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vaccine rows: %w", err)
	}

	return result, nil
}
