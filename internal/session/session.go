// Package session tracks the identity logged in to the REPL. At most one
// identity is active at a time.
package session

import (
	"sync"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/google/uuid"
)

type Session struct {
	mu       sync.RWMutex
	identity *models.Identity
	id       string
}

func New() *Session {
	return &Session{}
}

// Login makes identity the active one. It fails with
// common.ErrAlreadyLoggedIn while another login is active.
func (s *Session) Login(identity *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity != nil {
		return common.ErrAlreadyLoggedIn
	}
	s.identity = identity
	s.id = uuid.NewString()
	return nil
}

func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return common.ErrNoActiveSession
	}
	s.identity = nil
	s.id = ""
	return nil
}

func (s *Session) Current() (*models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.identity != nil
}

// ID identifies the current login in logs. Empty when logged out.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *Session) RequireAny() (*models.Identity, error) {
	if identity, ok := s.Current(); ok {
		return identity, nil
	}
	return nil, common.ErrNoActiveSession
}

func (s *Session) RequirePatient() (*models.Identity, error) {
	return s.require(models.KindPatient)
}

func (s *Session) RequireCaregiver() (*models.Identity, error) {
	return s.require(models.KindCaregiver)
}

func (s *Session) require(kind models.Kind) (*models.Identity, error) {
	identity, err := s.RequireAny()
	if err != nil {
		return nil, err
	}
	if identity.Kind != kind {
		return nil, common.ErrWrongSessionKind
	}
	return identity, nil
}
