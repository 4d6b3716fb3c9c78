package led

import "errors"

var (
	ErrIndex  = errors.New("led index out of range")
	ErrClosed = errors.New("led driver closed")
)
