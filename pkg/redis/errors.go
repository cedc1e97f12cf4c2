package redis

import "errors"

// Open and Healthcheck failures. Each is joined with the underlying cause.
var (
	ErrEmptyConnectionURL = errors.New("redis: connection url is empty")
	ErrFailedToParseURL   = errors.New("redis: invalid connection url")
	ErrConnectionFailed   = errors.New("redis: server unreachable")
	ErrHealthcheckFailed  = errors.New("redis: ping failed")
)
