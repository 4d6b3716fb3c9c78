package overlay

import (
	"math"

	"github.com/okian/ringclock/internal/domain/colour"
	"github.com/okian/ringclock/internal/domain/geometry"
)

const fullTurn = 2 * math.Pi

// Tick lengths as a share of the dial radius.
const (
	majorTickInner = 0.8
	minorTickInner = 0.9
)

// dial describes a face: a circle with evenly spaced ticks, every
// majorEvery-th tick drawn longer.
type dial struct {
	cx, cy     float64
	radius     float64
	divisions  int
	majorEvery int
}

func (d dial) render(c Canvas, col colour.RGB) {
	c.Save()
	defer c.Restore()

	c.SetColour(col)
	c.BeginPath()
	c.Arc(d.cx, d.cy, d.radius, 0, fullTurn, true)
	c.Stroke()

	c.BeginPath()
	for i := 0; i < d.divisions; i++ {
		inner := minorTickInner
		if i%d.majorEvery == 0 {
			inner = majorTickInner
		}
		f := float64(i) / float64(d.divisions)
		x1, y1 := geometry.PointAt(d.radius*inner, f)
		x2, y2 := geometry.PointAt(d.radius, f)
		c.MoveTo(d.cx+x1, d.cy+y1)
		c.LineTo(d.cx+x2, d.cy+y2)
	}
	c.Stroke()
}

// hand is a tapered wedge from the centre to radius r with round caps of
// half-width w at both ends.
type hand struct {
	radius float64
	width  float64
}

func (h hand) render(c Canvas, cx, cy, f float64, col colour.RGB) {
	a := geometry.AngleForFraction(f)
	x, y := geometry.Polar(h.radius, a)
	dx, dy := geometry.Polar(h.width, a-math.Pi/2)

	c.Save()
	defer c.Restore()
	c.SetColour(col)

	c.BeginPath()
	c.MoveTo(cx, cy)
	c.LineTo(cx+dx, cy+dy)
	c.LineTo(cx+x+dx, cy+y+dy)
	c.LineTo(cx+x-dx, cy+y-dy)
	c.LineTo(cx-dx, cy-dy)
	c.ClosePath()
	c.Fill()

	fillCircle(c, cx, cy, h.width)
	fillCircle(c, cx+x, cy+y, h.width)
}

func fillCircle(c Canvas, x, y, r float64) {
	c.BeginPath()
	c.Arc(x, y, r, 0, fullTurn, true)
	c.Fill()
}
