package overlay

import (
	"time"

	"github.com/okian/ringclock/internal/domain/calendar"
	"github.com/okian/ringclock/internal/domain/geometry"
)

// Sub-dial placement around the main face, as fractions of a turn from 12 o'clock.
const (
	monthDialAt = 1.0 / 3 // 2π/3
	dayDialAt   = 2.0 / 3 // 4π/3
)

// subDial is a small face offset from the main centre, tinted half way
// between background and foreground.
type subDial struct {
	layer
	face dial
	hand hand
}

func newSubDial(mainRadius, at float64, divisions int) subDial {
	r := mainRadius / 4
	cx, cy := geometry.PointAt(mainRadius/2, at)
	return subDial{
		layer: layer{enabled: true},
		face:  dial{cx: cx, cy: cy, radius: r, divisions: divisions, majorEvery: 1},
		hand:  hand{radius: 0.7 * r, width: 1.5},
	}
}

func (d *subDial) render(c Canvas, f float64) {
	col := d.scheme.Dim()
	d.face.render(c, col)
	d.hand.render(c, d.face.cx, d.face.cy, f, col)
}

// Centre returns the sub-dial centre relative to the main face centre.
func (d *subDial) Centre() (x, y float64) { return d.face.cx, d.face.cy }

// Month is a 12-division sub-dial pointing at the current month.
type Month struct {
	subDial
	month int
}

// NewMonth returns an enabled month sub-dial for a main face of mainRadius.
func NewMonth(mainRadius float64) *Month {
	return &Month{subDial: newSubDial(mainRadius, monthDialAt, 12)}
}

func (o *Month) Update(_ time.Duration, now calendar.Sample) { o.month = now.Month }

// HandFraction is month/12.
func (o *Month) HandFraction() float64 { return float64(o.month) / 12 }

func (o *Month) Render(c Canvas) { o.render(c, o.HandFraction()) }

// Day is a sub-dial with one division per day of the current month.
type Day struct {
	subDial
	leap      calendar.LeapRule
	day       int
	divisions int
}

// NewDay returns an enabled day-of-month sub-dial using the given leap rule
// (nil selects calendar.LiteralLeapRule).
func NewDay(mainRadius float64, leap calendar.LeapRule) *Day {
	if leap == nil {
		leap = calendar.LiteralLeapRule
	}
	return &Day{subDial: newSubDial(mainRadius, dayDialAt, 31), leap: leap, divisions: 31}
}

func (o *Day) Update(_ time.Duration, now calendar.Sample) {
	o.divisions = calendar.MonthDayCountWith(o.leap, now.Year, now.Month)
	o.face.divisions = o.divisions
	o.day = now.Day
}

// Divisions is the number of days in the month last seen by Update.
func (o *Day) Divisions() int { return o.divisions }

// HandFraction is mday/divisions.
func (o *Day) HandFraction() float64 { return float64(o.day) / float64(o.divisions) }

func (o *Day) Render(c Canvas) { o.render(c, o.HandFraction()) }
