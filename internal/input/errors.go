package input

import "errors"

var (
	ErrQueueClosed = errors.New("input queue closed")
	ErrQueueFull   = errors.New("input queue full")
)
