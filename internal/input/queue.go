package input

import (
	"context"
	"sync"

	"github.com/okian/ringclock/pkg/metrics"
)

const defaultQueueCapacity = 64

// Kind is the type of an input event.
type Kind int

const (
	EventConfirm Kind = iota
	EventCancel
	EventForeground
)

func (k Kind) String() string {
	switch k {
	case EventConfirm:
		return "confirm"
	case EventCancel:
		return "cancel"
	case EventForeground:
		return "foreground"
	default:
		return "unknown"
	}
}

// Event is one input delivered to the frame loop.
type Event struct {
	Kind Kind
}

// Queue is a bounded, non-blocking queue. Producers never wait: when the
// queue is full the event is rejected.
type Queue struct {
	events   chan Event
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue with configuration options.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.events = make(chan Event, q.capacity)
	metrics.UpdateInputQueued(0)
	return q
}

// Enqueue adds an event. It returns ErrQueueFull when the queue is at
// capacity, ErrQueueClosed after Close, or the context error.
func (q *Queue) Enqueue(ctx context.Context, e Event) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordInputDropped("closed")
		return ErrQueueClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordInputDropped("context_cancelled")
		return err
	}

	select {
	case q.events <- e:
		metrics.RecordInputEnqueued()
		metrics.UpdateInputQueued(len(q.events))
		return nil
	default:
		metrics.RecordInputDropped("queue_full")
		return ErrQueueFull
	}
}

// Drain returns every event queued so far without blocking.
func (q *Queue) Drain() []Event {
	var out []Event
	for {
		select {
		case e, ok := <-q.events:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			metrics.UpdateInputQueued(0)
			return out
		}
	}
}

// Len returns the current number of queued events.
func (q *Queue) Len() int { return len(q.events) }

// Close stops accepting events. Events already queued can still be drained.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.events)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *Queue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
