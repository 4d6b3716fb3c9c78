// Package colour holds the RGB colour type, linear blending and the fixed
// table of colour schemes shared by every overlay.
package colour

import (
	"fmt"
	"strconv"
)

// RGB is a colour with each channel normalized to [0,1].
type RGB struct {
	R, G, B float64
}

// Hex parses a 6-digit hex colour such as "EA638C" (a leading '#' is allowed).
func Hex(s string) (RGB, error) {
	if len(s) == 7 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("colour: %q is not a 6-digit hex colour", s)
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("colour: %q: %w", s, err)
		}
		ch[i] = float64(v) / 255
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// MustHex is Hex for compile-time constants; it panics on malformed input.
func MustHex(s string) RGB {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lerp blends c1 towards c2 channel by channel. t is not clamped.
func Lerp(t float64, c1, c2 RGB) RGB {
	return RGB{
		R: c1.R + (c2.R-c1.R)*t,
		G: c1.G + (c2.G-c1.G)*t,
		B: c1.B + (c2.B-c1.B)*t,
	}
}

// Clamp01 limits t to [0,1].
func Clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// To8 scales each channel by 255 and truncates. Channels outside [0,1]
// saturate at the byte bounds.
func (c RGB) To8() [3]uint8 {
	return [3]uint8{to8(c.R), to8(c.G), to8(c.B)}
}

func to8(v float64) uint8 {
	return uint8(255 * Clamp01(v))
}

// Hex formats the colour as "#rrggbb" after To8 truncation.
func (c RGB) Hex() string {
	b := c.To8()
	return fmt.Sprintf("#%02x%02x%02x", b[0], b[1], b[2])
}
