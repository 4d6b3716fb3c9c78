package host

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ringclock/internal/adapters/canvas"
	"github.com/okian/ringclock/internal/app"
	"github.com/okian/ringclock/internal/events"
	"github.com/okian/ringclock/internal/input"
	"github.com/okian/ringclock/internal/overlay"
	"github.com/okian/ringclock/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitWriter(io.Discard); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestRunnerWithClockApp(t *testing.T) {
	Convey("Given a runner driving the clock app", t, func() {
		ctx := context.Background()
		now := time.Date(2024, 3, 15, 10, 15, 30, 0, time.UTC)
		clock := func() time.Time { return now }
		bus := &events.Recorder{}
		q := input.NewQueue()

		var r *Runner
		a := app.New(ctx,
			app.WithBus(bus),
			app.WithClock(clock),
			app.WithScreenRadius(40),
			app.WithMinimise(func() { r.Minimise() }))
		r = New(a, q, canvas.NewRaster(40), WithClock(clock))

		Convey("A frame tick publishes the image and snapshot", func() {
			r.FrameTick(ctx)
			f := r.Latest()

			So(f.Visible, ShouldBeTrue)
			So(f.Image, ShouldNotBeNil)
			So(f.Image.Bounds().Dx(), ShouldEqual, 80)
			So(f.Snapshot.Sample.Hour, ShouldEqual, 10)
			So(f.Snapshot.LEDs[10], ShouldResemble, [3]uint8{255, 255, 255})
		})

		Convey("Queued confirm presses reach the app on the next frame", func() {
			So(q.Enqueue(ctx, input.Event{Kind: input.EventConfirm}), ShouldBeNil)
			r.FrameTick(ctx)
			So(r.Latest().Snapshot.SchemeIndex, ShouldEqual, 1)
		})

		Convey("Cancel hides the app until it is foregrounded", func() {
			_ = q.Enqueue(ctx, input.Event{Kind: input.EventCancel})
			r.FrameTick(ctx)
			So(r.Visible(), ShouldBeFalse)
			So(r.Latest().Visible, ShouldBeFalse)
			So(bus.Kinds(), ShouldResemble, []events.Kind{events.PatternDisable, events.PatternEnable})

			Convey("presses while hidden are dropped", func() {
				_ = q.Enqueue(ctx, input.Event{Kind: input.EventConfirm})
				r.FrameTick(ctx)
				So(r.Latest().Snapshot.SchemeIndex, ShouldEqual, 0)
			})

			Convey("foreground shows it again and reclaims the ring", func() {
				_ = q.Enqueue(ctx, input.Event{Kind: input.EventForeground})
				r.FrameTick(ctx)
				So(r.Visible(), ShouldBeTrue)
				So(r.Latest().Visible, ShouldBeTrue)
				So(bus.Kinds()[2], ShouldEqual, events.PatternDisable)
			})
		})
	})
}

type countingApp struct {
	updates     atomic.Int32
	backgrounds atomic.Int32
}

func (c *countingApp) Press(input.Button)                              {}
func (c *countingApp) Update(context.Context, time.Duration)           { c.updates.Add(1) }
func (c *countingApp) Draw(context.Context, overlay.Canvas)            {}
func (c *countingApp) BackgroundUpdate(context.Context, time.Duration) { c.backgrounds.Add(1) }
func (c *countingApp) OnForeground(context.Context)                    {}
func (c *countingApp) Snapshot() app.Snapshot                          { return app.Snapshot{} }

func TestRunnerRunAndShutdown(t *testing.T) {
	Convey("Run drives both cadences until shutdown", t, func() {
		a := &countingApp{}
		r := New(a, input.NewQueue(), canvas.NewRaster(8),
			WithFrameInterval(5*time.Millisecond),
			WithBackgroundInterval(10*time.Millisecond))

		go r.Run(context.Background())
		time.Sleep(100 * time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		So(r.Shutdown(ctx), ShouldBeNil)
		So(r.Shutdown(ctx), ShouldBeNil)

		So(a.updates.Load(), ShouldBeGreaterThan, 0)
		So(a.backgrounds.Load(), ShouldBeGreaterThan, 0)
	})

	Convey("Background ticks run while hidden", t, func() {
		a := &countingApp{}
		r := New(a, input.NewQueue(), canvas.NewRaster(8))
		r.Minimise()

		r.FrameTick(context.Background())
		r.BackgroundTick(context.Background())
		So(a.updates.Load(), ShouldEqual, 0)
		So(a.backgrounds.Load(), ShouldEqual, 1)
	})
}
