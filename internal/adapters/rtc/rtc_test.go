package rtc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/ringclock/internal/timesync"
)

func TestSoftwareSetDateTime(t *testing.T) {
	host := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSoftware(time.UTC)
	s.now = func() time.Time { return host }

	dt := timesync.DateTime{Year: 2024, Month: 3, Day: 15, DayOfWeek: 4, Hour: 10, Minute: 15, Seconds: 30, MilliSeconds: 250}
	if err := s.SetDateTime(context.Background(), dt); err != nil {
		t.Fatalf("set: %v", err)
	}

	want := time.Date(2024, 3, 15, 10, 15, 30, 250*int(time.Millisecond), time.UTC)
	if got := s.Now(); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	host = host.Add(90 * time.Second)
	if got := s.Now(); !got.Equal(want.Add(90 * time.Second)) {
		t.Errorf("expected clock to keep running, got %v", got)
	}
}

func TestSoftwareRejectsInvalid(t *testing.T) {
	s := NewSoftware(nil)
	for _, dt := range []timesync.DateTime{
		{Year: 2024, Month: 13, Day: 1},
		{Year: 2024, Month: 1, Day: 0},
		{Year: 2024, Month: 1, Day: 1, Hour: 24},
		{Year: 2024, Month: 1, Day: 1, MilliSeconds: 1000},
	} {
		if err := s.SetDateTime(context.Background(), dt); !errors.Is(err, ErrInvalidDateTime) {
			t.Errorf("%v: expected ErrInvalidDateTime, got %v", dt, err)
		}
	}
	if s.Offset() != 0 {
		t.Errorf("expected offset untouched, got %v", s.Offset())
	}
}
