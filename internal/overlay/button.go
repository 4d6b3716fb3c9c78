package overlay

import (
	"time"

	"github.com/okian/ringclock/internal/domain/calendar"
	"github.com/okian/ringclock/internal/domain/geometry"
)

// ButtonCount is the number of physical buttons around the face.
const ButtonCount = 6

// Indicator defaults.
const (
	DefaultIndicatorLifetime = 660 * time.Millisecond
	defaultIndicatorMargin   = 8
	defaultIndicatorBase     = 6
	defaultIndicatorGrow     = 14
)

// IndicatorOption configures a ButtonIndicator.
type IndicatorOption func(*ButtonIndicator)

// WithLifetime sets how long the pulse stays visible.
func WithLifetime(d time.Duration) IndicatorOption {
	return func(b *ButtonIndicator) {
		if d > 0 {
			b.lifetime = d
		}
	}
}

// WithMargin sets how far beyond the face radius the pulse is centred.
func WithMargin(m float64) IndicatorOption {
	return func(b *ButtonIndicator) { b.margin = m }
}

// ButtonIndicator is a one-shot radial pulse next to a physical button.
type ButtonIndicator struct {
	layer
	index      int
	faceRadius float64
	margin     float64
	base, grow float64

	elapsed  time.Duration
	lifetime time.Duration
}

// NewButtonIndicator returns a disabled indicator for button index (0..5).
// Buttons sit at 60° spacing starting at one o'clock.
func NewButtonIndicator(index int, faceRadius float64, opts ...IndicatorOption) *ButtonIndicator {
	b := &ButtonIndicator{
		index:      index,
		faceRadius: faceRadius,
		margin:     defaultIndicatorMargin,
		base:       defaultIndicatorBase,
		grow:       defaultIndicatorGrow,
		lifetime:   DefaultIndicatorLifetime,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Fire restarts the pulse from the beginning.
func (b *ButtonIndicator) Fire() {
	b.elapsed = 0
	b.enabled = true
}

// Update advances the pulse and retires it once its lifetime is reached.
func (b *ButtonIndicator) Update(delta time.Duration, _ calendar.Sample) {
	if !b.enabled {
		return
	}
	b.elapsed += delta
	if b.elapsed >= b.lifetime {
		b.enabled = false
	}
}

func (b *ButtonIndicator) Index() int              { return b.index }
func (b *ButtonIndicator) Elapsed() time.Duration  { return b.elapsed }
func (b *ButtonIndicator) Lifetime() time.Duration { return b.lifetime }

// Fraction is the button position as a fraction of a turn from 12 o'clock.
func (b *ButtonIndicator) Fraction() float64 {
	return float64(2*b.index+1) / (2 * ButtonCount)
}

// Radius is the pulse radius for the current elapsed time, eased out
// quadratically from the base radius.
func (b *ButtonIndicator) Radius() float64 {
	t := b.elapsed.Seconds() / b.lifetime.Seconds()
	if t > 1 {
		t = 1
	}
	ease := 1 - (1-t)*(1-t)
	return b.base + b.grow*ease
}

func (b *ButtonIndicator) Render(c Canvas) {
	x, y := geometry.PointAt(b.faceRadius+b.margin, b.Fraction())

	c.Save()
	defer c.Restore()
	c.SetColour(b.scheme.Accent)
	fillCircle(c, x, y, b.Radius())
}
