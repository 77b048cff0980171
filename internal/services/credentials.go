package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/cryptox"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/repositories/repomanager"
)

// CredentialStore registers and authenticates patients and caregivers.
//
// Contract:
//   - Register: common.ErrDuplicateUsername if the name is taken for that
//     kind, a *WeakPasswordError if the password fails the policy.
//   - Authenticate: common.ErrorNotFound for an unknown username,
//     common.ErrBadPassword for a wrong password.
type CredentialStore interface {
	Register(ctx context.Context, kind models.Kind, username, password string) (*models.Identity, error)
	Authenticate(ctx context.Context, kind models.Kind, username, password string) (*models.Identity, error)
}

type credentialStore struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	log logging.Logger
}

func NewCredentialStore(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) CredentialStore {
	return &credentialStore{db: db, rm: rm, log: log}
}

func (s *credentialStore) Register(ctx context.Context, kind models.Kind, username, password string) (*models.Identity, error) {
	if username == "" {
		return nil, common.ErrInvalidArguments
	}

	repo := s.rm.Identities(s.db)

	exists, err := repo.Exists(ctx, kind, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, common.ErrDuplicateUsername
	}

	if err := CheckPassword(password); err != nil {
		return nil, err
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return nil, err
	}

	identity, err := repo.Create(ctx, &models.Identity{
		Kind:     kind,
		Username: username,
		Salt:     salt,
		Hash:     cryptox.HashPassword(password, salt),
	})
	if err != nil {
		// lost a race with a concurrent registration of the same name
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}

	s.log.Info(ctx, "identity registered", "kind", kind.String(), "username", username)
	return identity, nil
}

func (s *credentialStore) Authenticate(ctx context.Context, kind models.Kind, username, password string) (*models.Identity, error) {
	identity, err := s.rm.Identities(s.db).GetByUsername(ctx, kind, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}

	if !cryptox.VerifyPassword(password, identity.Salt, identity.Hash) {
		s.log.Info(ctx, "login rejected", "kind", kind.String(), "username", username)
		return nil, common.ErrBadPassword
	}

	return identity, nil
}
