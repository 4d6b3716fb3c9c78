package overlay

import (
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ringclock/internal/adapters/canvas"
	"github.com/okian/ringclock/internal/domain/calendar"
	"github.com/okian/ringclock/internal/domain/colour"
)

func newRecordCanvas() *canvas.Recorder { return &canvas.Recorder{} }

// byColour counts calls named name per active colour.
func byColour(r *canvas.Recorder, name string) map[colour.RGB]int {
	out := map[colour.RGB]int{}
	for _, op := range r.Filter(name) {
		out[op.Colour]++
	}
	return out
}

func texts(r *canvas.Recorder) []string {
	var out []string
	for _, op := range r.Filter("text") {
		out = append(out, op.Text)
	}
	return out
}

func drawOps(r *canvas.Recorder) int {
	return r.Count("fill") + r.Count("stroke") + r.Count("text")
}

var sample = calendar.Sample{Year: 2024, Month: 3, Day: 15, Hour: 10, Minute: 15, Second: 30}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestClockHandFractions(t *testing.T) {
	Convey("Given a clock updated at 10:15:30", t, func() {
		c := NewClock(120)
		c.Update(0, sample)
		h, m, s := c.HandFractions()

		So(h, ShouldAlmostEqual, 0.8541666666, 1e-9)
		So(m, ShouldAlmostEqual, 0.2583333333, 1e-9)
		So(s, ShouldAlmostEqual, 0.5, 1e-9)
	})

	Convey("Hour fraction wraps past noon", t, func() {
		c := NewClock(120)
		c.Update(0, calendar.Sample{Hour: 23, Minute: 30})
		h, _, _ := c.HandFractions()
		So(h, ShouldAlmostEqual, 11.5/12, 1e-9)

		c.Update(0, calendar.Sample{Hour: 12})
		h, _, _ = c.HandFractions()
		So(h, ShouldEqual, 0.0)
	})
}

func TestClockRenderColours(t *testing.T) {
	Convey("The second hand is the only part in the accent colour", t, func() {
		scheme := colour.At(0)
		c := NewClock(120)
		c.SetScheme(scheme)
		c.Update(0, sample)

		rc := newRecordCanvas()
		Draw(rc, c)

		// wedge plus two caps per hand
		So(byColour(rc, "fill")[scheme.Accent], ShouldEqual, 3)
		So(byColour(rc, "fill")[scheme.Foreground], ShouldEqual, 6)
		// face circle and tick path
		So(byColour(rc, "stroke")[scheme.Foreground], ShouldEqual, 2)
		So(rc.Count("save"), ShouldEqual, rc.Count("restore"))
	})
}

func TestClockHandTips(t *testing.T) {
	Convey("At 10:15:30 each hand ends in a cap at its fraction of a turn", t, func() {
		c := NewClock(120)
		c.SetScheme(colour.At(0))
		c.Update(0, sample)

		rc := newRecordCanvas()
		Draw(rc, c)

		// face, then centre and tip caps for hour, minute and second
		arcs := rc.Filter("arc")
		So(arcs, ShouldHaveLength, 7)
		So(arcs[0].Args[:3], ShouldResemble, []float64{0, 0, 120})

		tips := []struct {
			op     canvas.Op
			radius float64
			frac   float64
		}{
			{arcs[2], 60, 10.25 / 12},
			{arcs[4], 96, 15.5 / 60},
			{arcs[6], 96, 0.5},
		}
		for _, tip := range tips {
			a := 2 * math.Pi * tip.frac
			So(tip.op.Args[0], ShouldAlmostEqual, tip.radius*math.Sin(a), 1e-9)
			So(tip.op.Args[1], ShouldAlmostEqual, -tip.radius*math.Cos(a), 1e-9)
		}

		// hour hand points up and left, second hand straight down
		So(arcs[2].Args[0], ShouldBeLessThan, 0)
		So(arcs[2].Args[1], ShouldBeLessThan, 0)
		So(arcs[6].Args[0], ShouldAlmostEqual, 0, 1e-9)
		So(arcs[6].Args[1], ShouldAlmostEqual, 96, 1e-9)
		So(arcs[6].Colour, ShouldEqual, colour.At(0).Accent)
	})
}

func TestSubDials(t *testing.T) {
	Convey("Given month and day sub-dials on a face of radius 120", t, func() {
		m := NewMonth(120)
		d := NewDay(120, nil)

		Convey("They sit half way out at a third and two thirds of a turn", func() {
			mx, my := m.Centre()
			So(mx, ShouldAlmostEqual, 60*math.Sin(2*math.Pi/3), 1e-9)
			So(my, ShouldAlmostEqual, -60*math.Cos(2*math.Pi/3), 1e-9)

			dx, dy := d.Centre()
			So(dx, ShouldAlmostEqual, -mx, 1e-9)
			So(dy, ShouldAlmostEqual, my, 1e-9)
		})

		Convey("The month hand points at month/12", func() {
			m.Update(0, sample)
			So(m.HandFraction(), ShouldAlmostEqual, 0.25, 1e-9)
		})

		Convey("The day dial has one division per day of the month", func() {
			d.Update(0, sample)
			So(d.Divisions(), ShouldEqual, 31)
			So(d.HandFraction(), ShouldAlmostEqual, 15.0/31, 1e-9)

			d.Update(0, calendar.Sample{Year: 2024, Month: 2, Day: 10})
			So(d.Divisions(), ShouldEqual, 28)

			d.Update(0, calendar.Sample{Year: 1900, Month: 2, Day: 10})
			So(d.Divisions(), ShouldEqual, 29)
		})

		Convey("The Gregorian rule gives 2024 a leap day", func() {
			g := NewDay(120, calendar.GregorianLeapRule)
			g.Update(0, calendar.Sample{Year: 2024, Month: 2, Day: 29})
			So(g.Divisions(), ShouldEqual, 29)
			So(g.HandFraction(), ShouldEqual, 1.0)
		})

		Convey("Both render in the dimmed colour only", func() {
			scheme := colour.At(2)
			m.SetScheme(scheme)
			m.Update(0, sample)
			rc := newRecordCanvas()
			Draw(rc, m)

			So(len(byColour(rc, "fill")), ShouldEqual, 1)
			So(byColour(rc, "fill")[scheme.Dim()], ShouldEqual, 3)
			So(byColour(rc, "stroke")[scheme.Dim()], ShouldEqual, 2)
		})
	})
}

func TestButtonIndicator(t *testing.T) {
	Convey("Given a button indicator", t, func() {
		b := NewButtonIndicator(2, 120)

		Convey("It starts disabled and draws nothing", func() {
			So(b.Enabled(), ShouldBeFalse)
			rc := newRecordCanvas()
			Draw(rc, b)
			So(drawOps(rc), ShouldEqual, 0)
		})

		Convey("Fire enables it until the lifetime elapses", func() {
			b.Fire()
			So(b.Enabled(), ShouldBeTrue)

			b.Update(300*time.Millisecond, sample)
			b.Update(300*time.Millisecond, sample)
			So(b.Enabled(), ShouldBeTrue)

			b.Update(60*time.Millisecond, sample)
			So(b.Enabled(), ShouldBeFalse)
		})

		Convey("Re-firing mid animation restarts the timer", func() {
			b.Fire()
			b.Update(500*time.Millisecond, sample)
			b.Fire()
			So(b.Elapsed(), ShouldEqual, time.Duration(0))

			b.Update(500*time.Millisecond, sample)
			So(b.Enabled(), ShouldBeTrue)
		})

		Convey("The pulse grows with ease-out from the base radius", func() {
			b.Fire()
			So(b.Radius(), ShouldEqual, float64(defaultIndicatorBase))

			b.Update(330*time.Millisecond, sample)
			So(b.Radius(), ShouldAlmostEqual, defaultIndicatorBase+defaultIndicatorGrow*0.75, 1e-9)
		})

		Convey("It renders one accent circle outside the face", func() {
			scheme := colour.At(0)
			b.SetScheme(scheme)
			b.Fire()
			rc := newRecordCanvas()
			Draw(rc, b)

			So(byColour(rc, "fill")[scheme.Accent], ShouldEqual, 1)
			arc := rc.Filter("arc")[0].Args
			So(math.Hypot(arc[0], arc[1]), ShouldAlmostEqual, 128, 1e-9)
			// button 2 sits at five o'clock
			So(arc[0], ShouldBeGreaterThan, 0)
			So(arc[1], ShouldBeGreaterThan, 0)
		})
	})

	Convey("Indicators are spaced 60 degrees apart", t, func() {
		for i := 0; i < ButtonCount-1; i++ {
			a := NewButtonIndicator(i, 120).Fraction()
			b := NewButtonIndicator(i+1, 120).Fraction()
			So(approx(b-a, 1.0/6), ShouldBeTrue)
		}
	})

	Convey("WithLifetime overrides the default", t, func() {
		b := NewButtonIndicator(0, 120, WithLifetime(time.Second))
		So(b.Lifetime(), ShouldEqual, time.Second)
		b.Fire()
		b.Update(900*time.Millisecond, sample)
		So(b.Enabled(), ShouldBeTrue)
	})
}

func TestNotification(t *testing.T) {
	Convey("Given a notification", t, func() {
		n := NewNotification("Initialized!", WithDisplayDuration(time.Second))

		Convey("It is enabled and carries an id", func() {
			So(n.Enabled(), ShouldBeTrue)
			So(n.ID().String(), ShouldNotBeEmpty)
			So(NewNotification("x").ID(), ShouldNotEqual, n.ID())
		})

		Convey("It draws the message in the background colour", func() {
			scheme := colour.At(1)
			n.SetScheme(scheme)
			rc := newRecordCanvas()
			Draw(rc, n)
			So(byColour(rc, "fill")[scheme.Accent], ShouldEqual, 1)
			So(texts(rc), ShouldResemble, []string{"Initialized!"})
		})

		Convey("It retires after its display duration", func() {
			n.Update(999*time.Millisecond, sample)
			So(n.Enabled(), ShouldBeTrue)
			n.Update(time.Millisecond, sample)
			So(n.Enabled(), ShouldBeFalse)
		})

		Convey("Long messages are shortened", func() {
			long := NewNotification("Status: 503, Message: service temporarily unavailable")
			rc := newRecordCanvas()
			Draw(rc, long)
			So(len([]rune(texts(rc)[0])), ShouldEqual, maxNotificationRunes)
		})
	})
}

func TestDrawSkipsDisabled(t *testing.T) {
	Convey("Draw is a no-op for a disabled overlay", t, func() {
		c := NewClock(120)
		c.enabled = false
		rc := newRecordCanvas()
		Draw(rc, c)
		So(drawOps(rc), ShouldEqual, 0)
	})
}
