package transport

import "errors"

var (
	// ErrTransport is returned when a request could not be completed:
	// connection failures, timeouts, cancellation or an unreadable body.
	ErrTransport = errors.New("transport: request failed")

	// ErrInvalidRequest is returned when a request cannot be built.
	ErrInvalidRequest = errors.New("transport: invalid request")
)
