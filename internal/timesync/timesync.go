// Package timesync sets the device clock once from a network time source,
// retrying failed attempts no more than once per interval.
package timesync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ringclock/internal/events"
	"github.com/okian/ringclock/pkg/logger"
	"github.com/okian/ringclock/pkg/metrics"
)

const (
	DefaultInterval = 60 * time.Second
	DefaultTimeout  = 10 * time.Second
)

// DateTime is the clock setting returned by the time service.
type DateTime struct {
	Year         int
	Month        int
	Day          int
	DayOfWeek    int
	Hour         int
	Minute       int
	Seconds      int
	MilliSeconds int
}

// Tuple returns the fields in the order the RTC expects them.
func (d DateTime) Tuple() [8]int {
	return [8]int{d.Year, d.Month, d.Day, d.DayOfWeek, d.Hour, d.Minute, d.Seconds, d.MilliSeconds}
}

func (d DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d",
		d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Seconds, d.MilliSeconds)
}

// Fetcher retrieves the current time from a remote source.
type Fetcher interface {
	Fetch(ctx context.Context) (DateTime, error)
}

// RTC applies a DateTime to the device clock.
type RTC interface {
	SetDateTime(ctx context.Context, dt DateTime) error
}

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(message string)
}

// State is the controller's position in the sync lifecycle.
type State int

const (
	StateIdle        State = iota // never attempted
	StatePending                  // attempt in flight
	StateCoolingDown              // last attempt failed
	StateSucceeded                // clock set; terminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateCoolingDown:
		return "cooling_down"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// Controller runs the sync state machine. Tick is expected to be called from
// a single goroutine.
type Controller struct {
	fetcher  Fetcher
	rtc      RTC
	notifier Notifier
	bus      events.Bus
	log      logger.Logger

	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	state       State
	attempted   bool
	lastAttempt time.Time
	lastErr     error
}

// New creates a controller fetching from f and writing to rtc.
func New(f Fetcher, rtc RTC, opts ...Option) *Controller {
	c := &Controller{
		fetcher:  f,
		rtc:      rtc,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get().Named("timesync")
	}
	metrics.UpdateSyncState(int(c.state))
	return c
}

// Tick attempts a sync when one is due and reports whether it tried.
// Failures are reported through the notifier and never returned.
func (c *Controller) Tick(ctx context.Context) bool {
	if !c.due() {
		return false
	}

	now := c.now()
	c.attempted = true
	c.lastAttempt = now
	c.setState(StatePending)

	id := uuid.NewString()
	c.log.Debug(ctx, "time sync attempt", logger.String("attempt_id", id))

	dt, err := c.attempt(ctx)
	latency := c.now().Sub(now)
	metrics.RecordSyncAttempt(outcome(err), latency)
	c.lastErr = err

	if err != nil {
		c.setState(StateCoolingDown)
		c.log.Warn(ctx, "time sync failed",
			logger.String("attempt_id", id),
			logger.String("outcome", outcome(err)),
			logger.Duration("retry_in", c.interval),
			logger.Error(err))
		if c.notifier != nil {
			c.notifier.Notify(err.Error())
		}
		c.emit(ctx, events.SyncFailed, err.Error())
		return true
	}

	c.setState(StateSucceeded)
	c.log.Info(ctx, "device clock set",
		logger.String("attempt_id", id),
		logger.String("datetime", dt.String()),
		logger.Duration("latency", latency))
	c.emit(ctx, events.SyncSucceeded, dt.String())
	return true
}

func (c *Controller) due() bool {
	if c.state == StateSucceeded {
		return false
	}
	return !c.attempted || c.now().Sub(c.lastAttempt) > c.interval
}

func (c *Controller) attempt(ctx context.Context) (DateTime, error) {
	fctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dt, err := c.fetcher.Fetch(fctx)
	if err != nil {
		return DateTime{}, err
	}
	if err := c.rtc.SetDateTime(ctx, dt); err != nil {
		return DateTime{}, fmt.Errorf("%w: %w", ErrClockWrite, err)
	}
	return dt, nil
}

func (c *Controller) emit(ctx context.Context, k events.Kind, msg string) {
	if c.bus == nil {
		return
	}
	e := events.New(k)
	e.Message = msg
	if err := c.bus.Emit(ctx, e); err != nil {
		c.log.Warn(ctx, "emit sync event", logger.Error(err))
	}
}

func (c *Controller) setState(s State) {
	c.state = s
	metrics.UpdateSyncState(int(s))
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Fetched reports whether the clock has been set.
func (c *Controller) Fetched() bool { return c.state == StateSucceeded }

// LastAttempt returns when the last attempt started, and false if none has.
func (c *Controller) LastAttempt() (time.Time, bool) { return c.lastAttempt, c.attempted }

// LastError returns the error of the most recent attempt.
func (c *Controller) LastError() error { return c.lastErr }
