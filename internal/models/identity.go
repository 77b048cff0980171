// Package models holds the scheduler's domain records.
package models

import "time"

// Kind tells patients and caregivers apart. The two kinds live in separate
// namespaces, so the same username may exist once per kind.
type Kind int

const (
	KindPatient Kind = iota + 1
	KindCaregiver
)

func (k Kind) String() string {
	switch k {
	case KindPatient:
		return "patient"
	case KindCaregiver:
		return "caregiver"
	default:
		return "unknown"
	}
}

type Identity struct {
	Kind      Kind
	Username  string
	Salt      []byte
	Hash      []byte
	CreatedAt time.Time
}
