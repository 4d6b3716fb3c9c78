package timesync

import (
	"errors"
	"fmt"
)

var (
	// ErrStatus is returned when the time service answers with a non-200 status.
	ErrStatus = errors.New("time service status")
	// ErrMalformed is returned when the payload lacks a required field.
	ErrMalformed = errors.New("malformed time payload")
	// ErrTransport covers DNS, connection and timeout failures.
	ErrTransport = errors.New("time service unreachable")
	// ErrClockWrite is returned when the fetched time cannot be applied.
	ErrClockWrite = errors.New("clock write failed")
)

// StatusError carries a non-200 response. It matches ErrStatus.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Status: %d, Message: %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// outcome maps an attempt result to its metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrClockWrite):
		return "clock_write"
	default:
		return "other"
	}
}
