// Package geometry converts fractions of a turn into angles and points on a
// clock face whose drawing surface has y increasing downwards.
package geometry

import "math"

// Frac reduces f into [0,1).
func Frac(f float64) float64 {
	f -= math.Floor(f)
	if f >= 1 { // -tiny + 1 rounds to 1
		return 0
	}
	return f
}

// AngleForFraction maps a fraction of a full turn, 0 at 12 o'clock and
// increasing clockwise, to a standard maths angle: π/2 − f·2π. Out of range
// fractions are taken modulo 1.
func AngleForFraction(f float64) float64 {
	return math.Pi/2 - Frac(f)*2*math.Pi
}

// Polar returns the drawing-surface point at radius r and maths angle a.
// The y component is negated because the surface grows downwards.
func Polar(r, a float64) (x, y float64) {
	return r * math.Cos(a), -r * math.Sin(a)
}

// PointAt is Polar(r, AngleForFraction(f)).
func PointAt(r, f float64) (x, y float64) {
	return Polar(r, AngleForFraction(f))
}
