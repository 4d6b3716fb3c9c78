package overlay

import (
	"time"

	"github.com/okian/ringclock/internal/domain/calendar"
	"github.com/okian/ringclock/internal/domain/geometry"
)

// Clock is the main face with hour, minute and second hands.
type Clock struct {
	layer
	face                 dial
	hourHand, minuteHand hand
	secondHand           hand

	hour, minute, second int
}

// NewClock returns an enabled clock face of the given radius.
func NewClock(radius float64) *Clock {
	return &Clock{
		layer:      layer{enabled: true},
		face:       dial{radius: radius, divisions: 12, majorEvery: 3},
		hourHand:   hand{radius: 0.5 * radius, width: 3},
		minuteHand: hand{radius: 0.8 * radius, width: 1},
		secondHand: hand{radius: 0.8 * radius, width: 0.5},
	}
}

// Update records the time shown by the hands.
func (o *Clock) Update(_ time.Duration, now calendar.Sample) {
	o.hour, o.minute, o.second = now.Hour, now.Minute, now.Second
}

// HandFractions returns the hour, minute and second hand positions as
// fractions of a turn.
func (o *Clock) HandFractions() (hour, minute, second float64) {
	h, m, s := float64(o.hour), float64(o.minute), float64(o.second)
	hour = geometry.Frac((h + m/60) / 12)
	minute = (m + s/60) / 60
	second = s / 60
	return hour, minute, second
}

func (o *Clock) Render(c Canvas) {
	fg := o.scheme.Foreground
	hf, mf, sf := o.HandFractions()

	o.face.render(c, fg)
	o.hourHand.render(c, 0, 0, hf, fg)
	o.minuteHand.render(c, 0, 0, mf, fg)
	o.secondHand.render(c, 0, 0, sf, o.scheme.Accent)
}
