package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *SQLiteRepository) Create(ctx context.Context, identity *models.Identity) (*models.Identity, error) {
	table, err := tableFor(identity.Kind)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now().UTC()
	query := fmt.Sprintf(`INSERT INTO %s (username, salt, hash, created_at) VALUES (?, ?, ?, ?)`, table)

	_, err = r.db.ExecContext(ctx, query,
		identity.Username, identity.Salt, identity.Hash, createdAt.Format(time.RFC3339Nano))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert %s: %w", identity.Kind, err)
	}

	identity.CreatedAt = createdAt
	return identity, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, kind models.Kind, username string) (*models.Identity, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT username, salt, hash, created_at FROM %s WHERE username = ?`, table)

	identity := &models.Identity{Kind: kind}
	var createdAt string
	err = r.db.QueryRowContext(ctx, query, username).
		Scan(&identity.Username, &identity.Salt, &identity.Hash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}

	identity.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("bad created_at for %s %q: %w", kind, username, err)
	}

	return identity, nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, kind models.Kind, username string) (bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	var n int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE username = ?`, table)
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", kind, err)
	}
	return n > 0, nil
}
