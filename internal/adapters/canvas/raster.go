// Package canvas provides drawing surfaces for the clock overlays: an RGBA
// rasterizer used to publish frames and a recorder used to inspect draw calls.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/okian/ringclock/internal/domain/colour"
)

const (
	defaultLineWidth = 1
	minArcSegments   = 12
	maxArcSegments   = 128

	fullTurn = 2 * math.Pi
)

type point struct{ x, y float64 }

type subpath struct {
	pts    []point
	closed bool
}

type rasterState struct {
	colour    color.RGBA
	lineWidth float64
}

// Raster draws onto a square RGBA image with the origin at its centre.
type Raster struct {
	img    *image.RGBA
	cx, cy float64

	state rasterState
	stack []rasterState
	path  []subpath
}

// NewRaster returns a raster for a face of the given radius.
func NewRaster(radius int) *Raster {
	size := 2 * radius
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, size, size)),
		cx:    float64(radius),
		cy:    float64(radius),
		state: rasterState{colour: color.RGBA{A: 0xff}, lineWidth: defaultLineWidth},
	}
}

// Image returns a copy of the current pixels.
func (r *Raster) Image() *image.RGBA {
	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}

// At returns the pixel at face coordinates (x, y).
func (r *Raster) At(x, y float64) color.RGBA {
	return r.img.RGBAAt(int(r.cx+x), int(r.cy+y))
}

func (r *Raster) Save() { r.stack = append(r.stack, r.state) }

func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Raster) SetColour(c colour.RGB) {
	b := c.To8()
	r.state.colour = color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
}

func (r *Raster) SetLineWidth(w float64) {
	if w > 0 {
		r.state.lineWidth = w
	}
}

func (r *Raster) BeginPath() { r.path = r.path[:0] }

func (r *Raster) MoveTo(x, y float64) {
	r.path = append(r.path, subpath{pts: []point{{x, y}}})
}

func (r *Raster) LineTo(x, y float64) {
	if len(r.path) == 0 {
		r.MoveTo(x, y)
		return
	}
	sp := &r.path[len(r.path)-1]
	sp.pts = append(sp.pts, point{x, y})
}

func (r *Raster) ClosePath() {
	if len(r.path) > 0 {
		r.path[len(r.path)-1].closed = true
	}
}

// Arc joins the current point to the arc start and appends the arc. Angles
// are in radians measured clockwise on screen.
func (r *Raster) Arc(x, y, radius, a0, a1 float64, ccw bool) {
	sweep := a1 - a0
	switch {
	case math.Abs(sweep) >= fullTurn:
		sweep = fullTurn
		if ccw {
			sweep = -fullTurn
		}
	case ccw && sweep > 0:
		sweep -= fullTurn
	case !ccw && sweep < 0:
		sweep += fullTurn
	}
	n := int(math.Abs(sweep) * radius / 2)
	n = max(minArcSegments, min(n, maxArcSegments))

	for i := 0; i <= n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		px, py := x+radius*math.Cos(a), y+radius*math.Sin(a)
		if i == 0 && len(r.path) == 0 {
			r.MoveTo(px, py)
			continue
		}
		r.LineTo(px, py)
	}
}

func (r *Raster) Rect(x, y, w, h float64) {
	r.path = append(r.path, subpath{
		pts:    []point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}},
		closed: true,
	})
}

// Fill fills every subpath of the current path.
func (r *Raster) Fill() {
	z := r.rasterizer()
	for _, sp := range r.path {
		if len(sp.pts) < 3 {
			continue
		}
		z.MoveTo(r.dev(sp.pts[0]))
		for _, p := range sp.pts[1:] {
			z.LineTo(r.dev(p))
		}
		z.ClosePath()
	}
	r.paint(z)
}

// Stroke draws each segment of the current path as a quad of the line width.
func (r *Raster) Stroke() {
	z := r.rasterizer()
	half := r.state.lineWidth / 2
	for _, sp := range r.path {
		pts := sp.pts
		if sp.closed && len(pts) > 1 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			dx, dy := b.x-a.x, b.y-a.y
			l := math.Hypot(dx, dy)
			if l == 0 {
				continue
			}
			nx, ny := -dy/l*half, dx/l*half
			z.MoveTo(r.dev(point{a.x + nx, a.y + ny}))
			z.LineTo(r.dev(point{b.x + nx, b.y + ny}))
			z.LineTo(r.dev(point{b.x - nx, b.y - ny}))
			z.LineTo(r.dev(point{a.x - nx, a.y - ny}))
			z.ClosePath()
		}
	}
	r.paint(z)
}

// Text draws s in the 7x13 bitmap font with its baseline at y.
func (r *Raster) Text(x, y float64, s string) {
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(r.state.colour),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(r.cx+x), int(r.cy+y)),
	}
	d.DrawString(s)
}

func (r *Raster) rasterizer() *vector.Rasterizer {
	b := r.img.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

func (r *Raster) paint(z *vector.Rasterizer) {
	z.DrawOp = draw.Over
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(r.state.colour), image.Point{})
}

func (r *Raster) dev(p point) (float32, float32) {
	return float32(r.cx + p.x), float32(r.cy + p.y)
}
