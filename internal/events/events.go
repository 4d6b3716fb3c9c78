// Package events defines the signals the clock emits to the rest of the
// device and the buses that carry them.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/okian/ringclock/pkg/logger"
)

// Kind names an event.
type Kind string

const (
	// PatternEnable hands the LED ring back to the device's ambient pattern.
	PatternEnable Kind = "pattern_enable"
	// PatternDisable claims the LED ring for the clock.
	PatternDisable Kind = "pattern_disable"
	SyncSucceeded  Kind = "sync_succeeded"
	SyncFailed     Kind = "sync_failed"
)

// Event is a single emitted signal.
type Event struct {
	Kind    Kind      `json:"kind"`
	At      time.Time `json:"at"`
	Message string    `json:"message,omitempty"`
}

// New returns an event of kind k stamped with the current time.
func New(k Kind) Event {
	return Event{Kind: k, At: time.Now()}
}

// Bus delivers events to interested parties.
type Bus interface {
	Emit(ctx context.Context, e Event) error
}

// LogBus writes every event to the log.
type LogBus struct {
	log logger.Logger
}

// NewLogBus returns a bus logging through l.
func NewLogBus(l logger.Logger) *LogBus {
	return &LogBus{log: l}
}

func (b *LogBus) Emit(ctx context.Context, e Event) error {
	fields := []logger.Field{logger.String("kind", string(e.Kind))}
	if e.Message != "" {
		fields = append(fields, logger.String("message", e.Message))
	}
	b.log.Info(ctx, "event emitted", fields...)
	return nil
}

// Multi fans an event out to every bus and joins their errors.
type Multi []Bus

func (m Multi) Emit(ctx context.Context, e Event) error {
	var errs []error
	for _, b := range m {
		if err := b.Emit(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps emitted events in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(_ context.Context, e Event) error {
	r.Events = append(r.Events, e)
	return nil
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []Kind {
	out := make([]Kind, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Kind
	}
	return out
}
