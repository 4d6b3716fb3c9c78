//go:build !linux

package rtc

import (
	"context"
	"errors"
	"time"

	"github.com/okian/ringclock/internal/timesync"
)

var errUnsupported = errors.New("setting the system clock is only supported on linux")

// System is unavailable on this platform; SetDateTime always fails.
type System struct {
	loc *time.Location
}

func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{loc: loc}
}

func (s *System) Now() time.Time { return time.Now().In(s.loc) }

func (s *System) SetDateTime(context.Context, timesync.DateTime) error {
	return errUnsupported
}
