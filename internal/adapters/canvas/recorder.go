package canvas

import (
	"fmt"
	"strings"

	"github.com/okian/ringclock/internal/domain/colour"
)

// Op is one recorded draw call.
type Op struct {
	Name   string
	Args   []float64
	Colour colour.RGB
	Text   string
}

func (o Op) String() string {
	var b strings.Builder
	b.WriteString(o.Name)
	for _, a := range o.Args {
		fmt.Fprintf(&b, " %.2f", a)
	}
	if o.Text != "" {
		fmt.Fprintf(&b, " %q", o.Text)
	}
	return b.String()
}

// Recorder keeps every draw call in order. Fill, Stroke and Text record the
// colour current at the time of the call.
type Recorder struct {
	Ops []Op

	colour colour.RGB
	stack  []colour.RGB
}

func (r *Recorder) add(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args, Colour: r.colour})
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.colour)
	r.add("save")
}

func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.colour = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.add("restore")
}

func (r *Recorder) SetColour(c colour.RGB) {
	r.colour = c
	r.add("colour", c.R, c.G, c.B)
}

func (r *Recorder) SetLineWidth(w float64)  { r.add("line_width", w) }
func (r *Recorder) BeginPath()              { r.add("begin_path") }
func (r *Recorder) MoveTo(x, y float64)     { r.add("move_to", x, y) }
func (r *Recorder) LineTo(x, y float64)     { r.add("line_to", x, y) }
func (r *Recorder) ClosePath()              { r.add("close_path") }
func (r *Recorder) Rect(x, y, w, h float64) { r.add("rect", x, y, w, h) }
func (r *Recorder) Stroke()                 { r.add("stroke") }
func (r *Recorder) Fill()                   { r.add("fill") }

func (r *Recorder) Arc(x, y, radius, a0, a1 float64, ccw bool) {
	dir := 0.0
	if ccw {
		dir = 1
	}
	r.add("arc", x, y, radius, a0, a1, dir)
}

func (r *Recorder) Text(x, y float64, s string) {
	r.add("text", x, y)
	r.Ops[len(r.Ops)-1].Text = s
}

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls named name.
func (r *Recorder) Filter(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops every recorded call.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.stack = r.stack[:0]
}
