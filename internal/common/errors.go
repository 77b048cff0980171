// Package common defines the sentinel errors shared by the scheduler's
// repositories, services and REPL. Callers should use errors.Is to match
// these values and KindOf to decide how an error is reported.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Validation errors.
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDoses     = errors.New("invalid number of doses")
	ErrWeakPassword     = errors.New("weak password")

	// Auth and session errors.
	ErrDuplicateUsername = errors.New("username taken")
	ErrBadPassword       = errors.New("bad password")
	ErrNoActiveSession   = errors.New("no active session")
	ErrWrongSessionKind  = errors.New("wrong session kind")
	ErrAlreadyLoggedIn   = errors.New("already logged in")

	// Reservation errors.
	ErrNoCaregiverAvailable = errors.New("no caregiver available")
	ErrInsufficientDoses    = errors.New("insufficient doses")
	ErrDuplicateSlot        = errors.New("availability already uploaded")
	ErrAlreadyBooked        = errors.New("slot already booked")
)

// ErrorKind is the coarse class of an error, used by the REPL to pick the
// reporting and exit behaviour.
type ErrorKind int

const (
	KindStorage ErrorKind = iota
	KindValidation
	KindAuth
	KindDomain
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindDomain:
		return "domain"
	default:
		return "storage"
	}
}

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidArguments, KindValidation},
	{ErrInvalidDate, KindValidation},
	{ErrInvalidDoses, KindValidation},
	{ErrWeakPassword, KindValidation},

	{ErrDuplicateUsername, KindAuth},
	{ErrBadPassword, KindAuth},
	{ErrorNotFound, KindAuth},
	{ErrNoActiveSession, KindAuth},
	{ErrWrongSessionKind, KindAuth},
	{ErrAlreadyLoggedIn, KindAuth},

	{ErrNoCaregiverAvailable, KindDomain},
	{ErrInsufficientDoses, KindDomain},
	{ErrDuplicateSlot, KindDomain},
	{ErrAlreadyBooked, KindDomain},
	{ErrorAlreadyExists, KindDomain},
}

// KindOf classifies err. Anything not wrapping a known sentinel, including
// driver errors and context timeouts, is a storage error. A nil error has no
// meaningful kind and reports KindStorage.
func KindOf(err error) ErrorKind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindStorage
}
