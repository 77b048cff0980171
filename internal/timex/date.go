package timex

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the mm-dd-yyyy form accepted by the command line. Single
// digit months and days are allowed.
const DateLayout = "1-2-2006"

// ISODate is the layout used when dates are printed or stored as text.
const ISODate = "2006-01-02"

// ParseDate parses a hyphen-delimited mm-dd-yyyy date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[2]) != 4 {
		return time.Time{}, fmt.Errorf("date %q is not in mm-dd-yyyy format", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}
	return t, nil
}

// Day truncates t to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate prints a calendar date as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}
