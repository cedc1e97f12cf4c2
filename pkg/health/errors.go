package health

import "errors"

var (
	// ErrCheckFailed is returned when one or more health checks fail.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that failed after the run timed out.
	ErrCheckTimeout = errors.New("health: check timeout")
)
