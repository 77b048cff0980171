package models

import "time"

type Appointment struct {
	ID                int64
	Date              time.Time
	CaregiverUsername string
	PatientUsername   string
	VaccineName       string
	CreatedAt         time.Time
}

// AppointmentSummary is what reservations and listings hand back to callers.
type AppointmentSummary struct {
	ID                int64
	Date              time.Time
	VaccineName       string
	CaregiverUsername string
	PatientUsername   string
}

func (a *Appointment) Summary() AppointmentSummary {
	return AppointmentSummary{
		ID:                a.ID,
		Date:              a.Date,
		VaccineName:       a.VaccineName,
		CaregiverUsername: a.CaregiverUsername,
		PatientUsername:   a.PatientUsername,
	}
}

// Counterpart returns the username of the other party from the point of view
// of someone of the given kind.
func (s AppointmentSummary) Counterpart(viewer Kind) string {
	if viewer == KindCaregiver {
		return s.PatientUsername
	}
	return s.CaregiverUsername
}
