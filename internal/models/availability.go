package models

import "time"

// AvailabilitySlot is one caregiver free on one calendar date.
type AvailabilitySlot struct {
	Date              time.Time
	CaregiverUsername string
}
