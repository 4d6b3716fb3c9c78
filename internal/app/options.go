package app

import (
	"time"

	"github.com/okian/ringclock/internal/domain/calendar"
	"github.com/okian/ringclock/internal/events"
	"github.com/okian/ringclock/internal/ledring"
	"github.com/okian/ringclock/internal/timesync"
	"github.com/okian/ringclock/pkg/logger"
)

// Option applies a configuration option to the ClockApp.
type Option func(*ClockApp)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(a *ClockApp) {
		if l != nil {
			a.log = l
		}
	}
}

// WithBus sets the event bus pattern signals are emitted on.
func WithBus(b events.Bus) Option {
	return func(a *ClockApp) {
		if b != nil {
			a.bus = b
		}
	}
}

// WithClock sets the time source read once per frame.
func WithClock(now func() time.Time) Option {
	return func(a *ClockApp) {
		if now != nil {
			a.now = now
		}
	}
}

// WithScreenRadius sets the face radius in pixels.
func WithScreenRadius(r float64) Option {
	return func(a *ClockApp) {
		if r > 0 {
			a.radius = r
		}
	}
}

// WithLeapRule selects how February is sized on the day dial.
func WithLeapRule(rule calendar.LeapRule) Option {
	return func(a *ClockApp) {
		if rule != nil {
			a.leap = rule
		}
	}
}

// WithSchemeIndex sets the initial colour scheme.
func WithSchemeIndex(i int) Option {
	return func(a *ClockApp) { a.schemeIndex = i }
}

// WithButtonMapping sets which indicator fires for confirm and cancel.
func WithButtonMapping(confirm, cancel int) Option {
	return func(a *ClockApp) {
		a.confirmButton = confirm
		a.cancelButton = cancel
	}
}

// WithButtonLifetime sets how long button indicators pulse.
func WithButtonLifetime(d time.Duration) Option {
	return func(a *ClockApp) {
		if d > 0 {
			a.buttonLifetime = d
		}
	}
}

// WithNotificationDuration sets how long notifications stay on screen.
func WithNotificationDuration(d time.Duration) Option {
	return func(a *ClockApp) {
		if d > 0 {
			a.notificationDuration = d
		}
	}
}

// WithLEDDriver sets the driver the ring buffer is committed to each frame.
func WithLEDDriver(d ledring.Driver) Option {
	return func(a *ClockApp) { a.driver = d }
}

// WithTimeSync enables the background clock sync. The app becomes the
// controller's notifier.
func WithTimeSync(f timesync.Fetcher, rtc timesync.RTC, opts ...timesync.Option) Option {
	return func(a *ClockApp) {
		a.fetcher = f
		a.rtc = rtc
		a.syncOpts = opts
	}
}

// WithMinimise sets the callback used to send the app to the background.
func WithMinimise(fn func()) Option {
	return func(a *ClockApp) { a.minimise = fn }
}
