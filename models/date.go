package models

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component, stored as "YYYY-MM-DD".
// All booking dates are normalized to this form at the transport boundary so that
// date equality never depends on time zones or truncation.
type Date string

// ParseDate accepts either a plain calendar date ("2025-06-01") or an RFC 3339
// timestamp, discarding any time-of-day portion.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date(t.Format(dateLayout)), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date(t.Format(dateLayout)), nil
	}
	return "", fmt.Errorf("invalid booking date %q: expected YYYY-MM-DD", s)
}

func (d Date) String() string {
	return string(d)
}

func (d Date) IsZero() bool {
	return d == ""
}

// Time returns the date at midnight UTC, for scheduling arithmetic.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}
