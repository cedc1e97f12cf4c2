package profile

import "errors"

// Errors returned by profile fetches. Every failure carries exactly one of
// them; the underlying cause is joined so errors.Is still sees it.
var (
	// ErrUserNotFound is returned for blank usernames and when the
	// repository listing answers 404.
	ErrUserNotFound = errors.New("profile: user not found")

	// ErrNetworkFailure is returned for transport failures, timeouts,
	// cancellation and any non-2xx status other than 404.
	ErrNetworkFailure = errors.New("profile: network failure")

	// ErrInvalidResponse is returned when a successful response body
	// cannot be decoded into repositories.
	ErrInvalidResponse = errors.New("profile: invalid response")
)
