package jobboard

import (
	"time"

	"github.com/garnizeh/jobboard/pkg/models"
)

// Clock reports the calendar day used to decide whether a deadline passed.
type Clock struct {
	Now func() time.Time
	Loc *time.Location
}

// SystemClock uses wall time in loc. A nil loc means UTC.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Loc: loc}
}

// FixedClock always reports day d. Used by tests and tools.
func FixedClock(d models.Date) Clock {
	t := d.Time()
	return Clock{Now: func() time.Time { return t }, Loc: time.UTC}
}

func (c Clock) Today() models.Date {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Loc
	if loc == nil {
		loc = time.UTC
	}
	return models.DateOf(now().In(loc))
}

func nowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}

// WithNow returns a copy of c reading time from now.
func (c Clock) WithNow(now func() time.Time) Clock {
	c.Now = now
	return c
}
