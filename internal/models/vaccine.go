package models

import "math"

// MaxDoses is the largest dose count a vaccine can hold. It matches the
// INTEGER column on PostgreSQL.
const MaxDoses = math.MaxInt32

type VaccineStock struct {
	Name  string
	Doses int
}
