package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestAngleForFraction(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		want float64
	}{
		{"twelve", 0, math.Pi / 2},
		{"three", 0.25, 0},
		{"six", 0.5, -math.Pi / 2},
		{"nine", 0.75, -math.Pi},
		{"wraps above one", 1.25, 0},
		{"wraps negative", -0.25, -math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleForFraction(tt.f); !near(got, tt.want) {
				t.Fatalf("AngleForFraction(%v) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}

func TestPointAtUsesDownwardY(t *testing.T) {
	x, y := PointAt(100, 0)
	if !near(x, 0) || !near(y, -100) {
		t.Fatalf("12 o'clock = (%v,%v), want (0,-100)", x, y)
	}
	x, y = PointAt(100, 0.25)
	if !near(x, 100) || !near(y, 0) {
		t.Fatalf("3 o'clock = (%v,%v), want (100,0)", x, y)
	}
	x, y = PointAt(100, 0.5)
	if !near(x, 0) || !near(y, 100) {
		t.Fatalf("6 o'clock = (%v,%v), want (0,100)", x, y)
	}
}

func TestFrac(t *testing.T) {
	for _, f := range []float64{0, 0.3, 0.999, 1, 7.5, -0.1, -1e-18} {
		got := Frac(f)
		if got < 0 || got >= 1 {
			t.Errorf("Frac(%v) = %v, outside [0,1)", f, got)
		}
	}
}
