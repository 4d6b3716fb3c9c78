package host

import (
	"time"

	"github.com/okian/ringclock/pkg/logger"
)

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithFrameInterval sets the foreground cadence.
func WithFrameInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.frameInterval = d
		}
	}
}

// WithBackgroundInterval sets the background cadence.
func WithBackgroundInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.backgroundInterval = d
		}
	}
}

// WithClock replaces the clock used to measure deltas.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}
