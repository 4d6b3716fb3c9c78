// Package app wires the clock overlays, the LED ring and the time sync into
// the foreground and background callbacks driven by the host.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/ringclock/internal/domain/calendar"
	"github.com/okian/ringclock/internal/domain/colour"
	"github.com/okian/ringclock/internal/events"
	"github.com/okian/ringclock/internal/input"
	"github.com/okian/ringclock/internal/ledring"
	"github.com/okian/ringclock/internal/overlay"
	"github.com/okian/ringclock/internal/timesync"
	"github.com/okian/ringclock/pkg/logger"
	"github.com/okian/ringclock/pkg/metrics"
)

const (
	defaultScreenRadius  = 120
	defaultConfirmButton = 2
	defaultCancelButton  = 5

	initialNotification = "Initialized!"
)

// ClockApp is the clock widget. It is driven from a single goroutine and
// does no locking of its own.
type ClockApp struct {
	log    logger.Logger
	bus    events.Bus
	now    func() time.Time
	leap   calendar.LeapRule
	radius float64

	buttons       *input.Buttons
	confirmButton int
	cancelButton  int
	minimise      func()

	schemeIndex int

	month        *overlay.Month
	day          *overlay.Day
	clock        *overlay.Clock
	notification *overlay.Notification
	indicators   [overlay.ButtonCount]*overlay.ButtonIndicator

	buttonLifetime       time.Duration
	notificationDuration time.Duration

	fetcher  timesync.Fetcher
	rtc      timesync.RTC
	syncOpts []timesync.Option
	sync     *timesync.Controller

	driver ledring.Driver
	sample calendar.Sample
	leds   ledring.Buffer
}

// New builds the app, claims the LED ring and shows the start-up notification.
func New(ctx context.Context, opts ...Option) *ClockApp {
	a := &ClockApp{
		now:                  time.Now,
		leap:                 calendar.LiteralLeapRule,
		radius:               defaultScreenRadius,
		buttons:              input.NewButtons(),
		confirmButton:        defaultConfirmButton,
		cancelButton:         defaultCancelButton,
		buttonLifetime:       overlay.DefaultIndicatorLifetime,
		notificationDuration: overlay.DefaultNotificationDuration,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Get().Named("app")
	}
	if a.bus == nil {
		a.bus = events.NewLogBus(a.log)
	}
	a.schemeIndex = colour.Index(a.schemeIndex)

	a.month = overlay.NewMonth(a.radius)
	a.day = overlay.NewDay(a.radius, a.leap)
	a.clock = overlay.NewClock(a.radius)
	for i := range a.indicators {
		a.indicators[i] = overlay.NewButtonIndicator(i, a.radius, overlay.WithLifetime(a.buttonLifetime))
	}
	a.Notify(initialNotification)

	if a.fetcher != nil && a.rtc != nil {
		syncOpts := append([]timesync.Option{
			timesync.WithNotifier(a),
			timesync.WithBus(a.bus),
			timesync.WithLogger(a.log.Named("timesync")),
		}, a.syncOpts...)
		a.sync = timesync.New(a.fetcher, a.rtc, syncOpts...)
	}

	a.pushScheme()
	a.emit(ctx, events.PatternDisable)
	return a
}

// Overlays returns every layer in draw order: month, day, clock,
// notification, then the six button indicators.
func (a *ClockApp) Overlays() []overlay.Overlay {
	out := []overlay.Overlay{a.month, a.day, a.clock, a.notification}
	for _, b := range a.indicators {
		out = append(out, b)
	}
	return out
}

// Scheme returns the active colour scheme.
func (a *ClockApp) Scheme() colour.Scheme { return colour.At(a.schemeIndex) }

// SchemeIndex returns the index of the active colour scheme.
func (a *ClockApp) SchemeIndex() int { return a.schemeIndex }

// Press latches a button for the next Update.
func (a *ClockApp) Press(b input.Button) { a.buttons.Press(b) }

// Notify replaces the current notification with message.
func (a *ClockApp) Notify(message string) {
	a.notification = overlay.NewNotification(message,
		overlay.WithDisplayDuration(a.notificationDuration),
		overlay.WithFaceRadius(a.radius))
	a.notification.SetScheme(a.Scheme())
	metrics.RecordNotification()
}

// Update is the foreground tick: it samples the time once, handles latched
// input and advances every overlay.
func (a *ClockApp) Update(ctx context.Context, delta time.Duration) {
	a.sample = calendar.FromTime(a.now())

	if a.buttons.Get(input.Cancel) {
		a.buttons.Clear()
		a.fire(a.cancelButton)
		a.emit(ctx, events.PatternEnable)
		a.log.Debug(ctx, "minimise requested")
		if a.minimise != nil {
			a.minimise()
		}
	}

	if a.buttons.Get(input.Confirm) {
		a.buttons.Clear()
		a.fire(a.confirmButton)
		a.schemeIndex = (a.schemeIndex + 1) % colour.Count()
		a.pushScheme()
		metrics.RecordSchemeChange(a.schemeIndex)
		a.log.Debug(ctx, "colour scheme changed", logger.Int("scheme", a.schemeIndex))
	}

	for _, o := range a.Overlays() {
		o.Update(delta, a.sample)
	}
}

// Draw paints the background and every enabled overlay, then commits the
// LED ring computed from the sample taken by the last Update.
func (a *ClockApp) Draw(ctx context.Context, c overlay.Canvas) {
	s := a.Scheme()
	r := a.radius

	c.Save()
	c.SetColour(s.Background)
	c.BeginPath()
	c.Rect(-r, -r, 2*r, 2*r)
	c.Fill()
	c.Restore()

	enabled := 0
	for _, o := range a.Overlays() {
		if o.Enabled() {
			enabled++
		}
		overlay.Draw(c, o)
	}
	metrics.UpdateOverlaysEnabled(enabled)

	a.leds = ledring.Compose(a.sample, s)
	if a.driver == nil {
		return
	}
	err := ledring.Commit(a.driver, a.leds)
	metrics.RecordLEDCommit(err)
	if err != nil {
		a.log.Error(ctx, "led commit failed", logger.Error(err))
	}
}

// BackgroundUpdate runs regardless of visibility and drives the time sync.
func (a *ClockApp) BackgroundUpdate(ctx context.Context, _ time.Duration) {
	if a.sync != nil {
		a.sync.Tick(ctx)
	}
}

// OnForeground reclaims the LED ring when the app is brought back.
func (a *ClockApp) OnForeground(ctx context.Context) {
	a.emit(ctx, events.PatternDisable)
}

// LEDs returns the ring buffer from the last Draw.
func (a *ClockApp) LEDs() ledring.Buffer { return a.leds }

func (a *ClockApp) fire(button int) {
	if button < 0 || button >= len(a.indicators) {
		return
	}
	a.indicators[button].Fire()
	metrics.RecordButtonFire(fmt.Sprintf("%c", 'A'+button))
}

func (a *ClockApp) pushScheme() {
	s := a.Scheme()
	for _, o := range a.Overlays() {
		o.SetScheme(s)
	}
}

func (a *ClockApp) emit(ctx context.Context, k events.Kind) {
	if err := a.bus.Emit(ctx, events.New(k)); err != nil {
		a.log.Warn(ctx, "emit event", logger.String("kind", string(k)), logger.Error(err))
	}
}
