package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("input closed")
	ErrNoFrame      = errors.New("no frame rendered yet")
)
