package github

import "errors"

// ErrUnexpectedStatus describes a non-2xx response. It is always joined
// with one of the profile error kinds.
var ErrUnexpectedStatus = errors.New("github: unexpected status")
