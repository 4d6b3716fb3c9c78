// Package overlay implements the visual layers composed onto the clock face:
// the main clock, the month and day sub-dials, the button press indicators and
// the notification banner.
//
// Every layer shares the active colour scheme, advances its state only in
// Update and never changes state while rendering.
package overlay

import (
	"time"

	"github.com/okian/ringclock/internal/domain/calendar"
	"github.com/okian/ringclock/internal/domain/colour"
)

// Canvas is the drawing context overlays render into. Coordinates are
// centred on the face with y growing downwards.
type Canvas interface {
	Save()
	Restore()
	SetColour(c colour.RGB)
	SetLineWidth(w float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	// Arc adds a circular arc from angle a0 to a1 (radians).
	Arc(x, y, r, a0, a1 float64, ccw bool)
	Rect(x, y, w, h float64)
	Stroke()
	Fill()
	Text(x, y float64, s string)
}

// Overlay is one independently updatable, independently toggled layer.
type Overlay interface {
	Enabled() bool
	Scheme() colour.Scheme
	// SetScheme is called by the owner whenever the active scheme changes.
	SetScheme(s colour.Scheme)
	Update(delta time.Duration, now calendar.Sample)
	// Render draws unconditionally; use Draw to honour Enabled.
	Render(c Canvas)
}

// Draw renders o when it is enabled.
func Draw(c Canvas, o Overlay) {
	if !o.Enabled() {
		return
	}
	o.Render(c)
}

// layer carries the state common to every overlay.
type layer struct {
	enabled bool
	scheme  colour.Scheme
}

func (l *layer) Enabled() bool             { return l.enabled }
func (l *layer) Scheme() colour.Scheme     { return l.scheme }
func (l *layer) SetScheme(s colour.Scheme) { l.scheme = s }
