// Package rtc applies a fetched date and time to a clock: either an
// in-process offset clock or the host system clock.
package rtc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/ringclock/internal/timesync"
)

var ErrInvalidDateTime = errors.New("invalid date time")

// toTime interprets dt as wall clock time in loc. The day of week is implied
// by the date and ignored.
func toTime(dt timesync.DateTime, loc *time.Location) (time.Time, error) {
	if dt.Month < 1 || dt.Month > 12 || dt.Day < 1 || dt.Day > 31 ||
		dt.Hour < 0 || dt.Hour > 23 || dt.Minute < 0 || dt.Minute > 59 ||
		dt.Seconds < 0 || dt.Seconds > 60 || dt.MilliSeconds < 0 || dt.MilliSeconds > 999 {
		return time.Time{}, ErrInvalidDateTime
	}
	return time.Date(dt.Year, time.Month(dt.Month), dt.Day,
		dt.Hour, dt.Minute, dt.Seconds, dt.MilliSeconds*int(time.Millisecond), loc), nil
}

// Software is a clock running at a fixed offset from the host clock. It is
// used where the process may not set the system time.
type Software struct {
	mu     sync.RWMutex
	offset time.Duration
	loc    *time.Location
	now    func() time.Time
}

// NewSoftware returns a clock interpreting set times in loc (nil for Local).
func NewSoftware(loc *time.Location) *Software {
	if loc == nil {
		loc = time.Local
	}
	return &Software{loc: loc, now: time.Now}
}

// Now returns the adjusted time in the clock's location.
func (s *Software) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now().Add(s.offset).In(s.loc)
}

// Offset returns the current adjustment.
func (s *Software) Offset() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offset
}

func (s *Software) SetDateTime(_ context.Context, dt timesync.DateTime) error {
	t, err := toTime(dt, s.loc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = t.Sub(s.now())
	return nil
}
