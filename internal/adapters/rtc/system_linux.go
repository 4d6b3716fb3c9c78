//go:build linux

package rtc

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/okian/ringclock/internal/timesync"
)

// System sets the host clock. The process needs CAP_SYS_TIME.
type System struct {
	loc *time.Location
}

// NewSystem returns a setter interpreting times in loc (nil for Local).
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{loc: loc}
}

// Now returns the system time.
func (s *System) Now() time.Time { return time.Now().In(s.loc) }

func (s *System) SetDateTime(_ context.Context, dt timesync.DateTime) error {
	t, err := toTime(dt, s.loc)
	if err != nil {
		return err
	}
	tv := unix.NsecToTimeval(t.UnixNano())
	if err := unix.Settimeofday(&tv); err != nil {
		return fmt.Errorf("settimeofday: %w", err)
	}
	return nil
}
