// Package host runs the clock app: it owns the single goroutine that issues
// foreground frames and background ticks, tracks visibility and publishes the
// last rendered frame for other goroutines.
package host

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/ringclock/internal/app"
	"github.com/okian/ringclock/internal/input"
	"github.com/okian/ringclock/internal/overlay"
	"github.com/okian/ringclock/pkg/logger"
	"github.com/okian/ringclock/pkg/metrics"
)

const (
	DefaultFrameInterval      = 50 * time.Millisecond
	DefaultBackgroundInterval = time.Second
)

// App is the widget driven by the runner.
type App interface {
	Press(b input.Button)
	Update(ctx context.Context, delta time.Duration)
	Draw(ctx context.Context, c overlay.Canvas)
	BackgroundUpdate(ctx context.Context, delta time.Duration)
	OnForeground(ctx context.Context)
	Snapshot() app.Snapshot
}

// Surface is the canvas frames are drawn on.
type Surface interface {
	overlay.Canvas
	Image() *image.RGBA
}

// Frame is the last published frame.
type Frame struct {
	Image    *image.RGBA
	Snapshot app.Snapshot
	Rendered time.Time
	Visible  bool
}

// Runner drives an App from a single goroutine, so no two callbacks overlap.
type Runner struct {
	app     App
	queue   *input.Queue
	surface Surface
	log     logger.Logger
	now     func() time.Time

	frameInterval      time.Duration
	backgroundInterval time.Duration

	visible        atomic.Bool
	lastFrame      time.Time
	lastBackground time.Time

	mu    sync.RWMutex
	frame Frame

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}
}

// New creates a runner. The app starts visible.
func New(a App, q *input.Queue, s Surface, opts ...Option) *Runner {
	r := &Runner{
		app:                a,
		queue:              q,
		surface:            s,
		now:                time.Now,
		frameInterval:      DefaultFrameInterval,
		backgroundInterval: DefaultBackgroundInterval,
		shutdown:           make(chan struct{}),
		done:               make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get().Named("host")
	}
	r.visible.Store(true)
	metrics.UpdateAppVisible(true)
	return r
}

// Run issues frames and background ticks until ctx is cancelled or Shutdown
// is called.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)

	frames := time.NewTicker(r.frameInterval)
	defer frames.Stop()
	background := time.NewTicker(r.backgroundInterval)
	defer background.Stop()

	r.log.Info(ctx, "runner started",
		logger.Duration("frame_interval", r.frameInterval),
		logger.Duration("background_interval", r.backgroundInterval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.shutdown:
			return
		case <-frames.C:
			r.FrameTick(ctx)
		case <-background.C:
			r.BackgroundTick(ctx)
		}
	}
}

// Shutdown stops the loop and waits for the current callback to finish.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.shutdownOnce.Do(func() { close(r.shutdown) })

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		r.log.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// FrameTick handles queued input and, while visible, updates and draws one
// frame. Button presses that arrive while hidden are dropped.
func (r *Runner) FrameTick(ctx context.Context) {
	for _, e := range r.queue.Drain() {
		r.handle(ctx, e)
	}
	if !r.visible.Load() {
		return
	}

	start := r.now()
	delta := r.frameInterval
	if !r.lastFrame.IsZero() {
		delta = start.Sub(r.lastFrame)
	}
	r.lastFrame = start

	r.app.Update(ctx, delta)
	if !r.visible.Load() {
		// minimised during this update
		r.publish(start)
		return
	}
	r.app.Draw(ctx, r.surface)
	r.publish(start)

	metrics.RecordFrame(r.now().Sub(start))
}

// BackgroundTick runs the app's background work regardless of visibility.
func (r *Runner) BackgroundTick(ctx context.Context) {
	now := r.now()
	delta := r.backgroundInterval
	if !r.lastBackground.IsZero() {
		delta = now.Sub(r.lastBackground)
	}
	r.lastBackground = now
	r.app.BackgroundUpdate(ctx, delta)
}

// Minimise hides the app. It is called by the app from within Update.
func (r *Runner) Minimise() {
	r.visible.Store(false)
	r.lastFrame = time.Time{}
	metrics.UpdateAppVisible(false)
}

// Visible reports whether foreground frames are being issued.
func (r *Runner) Visible() bool { return r.visible.Load() }

// Latest returns the last published frame.
func (r *Runner) Latest() Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frame
}

func (r *Runner) handle(ctx context.Context, e input.Event) {
	switch e.Kind {
	case input.EventForeground:
		if r.visible.Load() {
			return
		}
		r.visible.Store(true)
		metrics.UpdateAppVisible(true)
		r.log.Debug(ctx, "app brought to foreground")
		r.app.OnForeground(ctx)
	case input.EventConfirm:
		if r.visible.Load() {
			r.app.Press(input.Confirm)
		}
	case input.EventCancel:
		if r.visible.Load() {
			r.app.Press(input.Cancel)
		}
	}
}

func (r *Runner) publish(at time.Time) {
	f := Frame{
		Snapshot: r.app.Snapshot(),
		Rendered: at,
		Visible:  r.visible.Load(),
	}
	if f.Visible {
		f.Image = r.surface.Image()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f.Image == nil {
		f.Image = r.frame.Image
	}
	r.frame = f
}
