package input

// Option applies a configuration option to the Queue.
type Option func(*Queue)

// WithCapacity sets the maximum number of events waiting for a frame.
func WithCapacity(capacity int) Option {
	return func(q *Queue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}
