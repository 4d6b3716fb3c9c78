package timesync

import (
	"time"

	"github.com/okian/ringclock/internal/events"
	"github.com/okian/ringclock/pkg/logger"
)

// Option configures a Controller.
type Option func(*Controller)

// WithInterval sets the minimum gap between attempts.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClock replaces the wall clock used for cooldown decisions.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithNotifier sets where failure messages are shown.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithBus emits SyncSucceeded and SyncFailed events on b.
func WithBus(b events.Bus) Option {
	return func(c *Controller) { c.bus = b }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) { c.log = l }
}
