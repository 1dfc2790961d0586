package models

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted representation of a Date. It is fixed
// width and zero padded, so comparing two Dates as strings orders them
// chronologically.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, kept in its stored form.
type Date string

// ParseDate validates s against DateLayout and returns it normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Time returns midnight UTC of d. The zero time is returned for a malformed Date.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d < o }

// Expired reports whether a deadline d has passed on day today. A deadline
// equal to today is still open.
func (d Date) Expired(today Date) bool { return d < today }

func (d Date) String() string { return string(d) }
