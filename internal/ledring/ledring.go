// Package ledring turns a time sample into the 12-slot colour buffer shown on
// the ambient LED ring around the face.
package ledring

import (
	"fmt"

	"github.com/okian/ringclock/internal/domain/calendar"
	"github.com/okian/ringclock/internal/domain/colour"
)

// Slots is the number of LEDs on the ring.
const Slots = 12

// Buffer holds one colour per ring slot. Slot 0 is twelve o'clock.
type Buffer [Slots]colour.RGB

// RGB8 returns the buffer as 8-bit triples.
func (b Buffer) RGB8() [Slots][3]uint8 {
	var out [Slots][3]uint8
	for i, c := range b {
		out[i] = c.To8()
	}
	return out
}

// Driver writes colours to the physical ring. LED indices are 1-based.
type Driver interface {
	SetLED(index int, rgb [3]uint8) error
	Flush() error
}

// Compose builds the ring buffer for now under scheme s.
//
// The minute marker is dimmed foreground, the hour marker is foreground and
// overwrites it, and the seconds sweep blends accent into the current
// five-second slot while fading it out of the previous one.
func Compose(now calendar.Sample, s colour.Scheme) Buffer {
	var b Buffer
	for i := range b {
		b[i] = s.Background
	}

	// minutes 55..59 share slot 11 with the eleven o'clock hour
	b[(now.Minute/5)%Slots] = s.Dim()
	b[now.Hour%Slots] = s.Foreground

	i := (now.Second / 5) % Slots
	t := colour.Clamp01(float64(now.Second)/5 - float64(now.Second/5))
	b[i] = colour.Lerp(t, b[i], s.Accent)

	prev := (i + Slots - 1) % Slots
	b[prev] = colour.Lerp(1-t, b[prev], s.Accent)

	return b
}

// Commit writes slot i to LED i+1 and flushes the driver.
func Commit(d Driver, b Buffer) error {
	for i, rgb := range b.RGB8() {
		if err := d.SetLED(i+1, rgb); err != nil {
			return fmt.Errorf("set led %d: %w", i+1, err)
		}
	}
	if err := d.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
