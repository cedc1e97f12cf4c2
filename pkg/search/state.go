package search

import "github.com/dmitrymomot/ghprofile/pkg/profile"

// Status is the phase of a Holder.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// State is a snapshot of a Holder. Profile is set only when Loaded,
// Alert only when Errored.
type State struct {
	Profile *profile.Profile
	Alert   *Alert
	Status  Status
}

func idle() State { return State{Status: StatusIdle} }

func loading() State { return State{Status: StatusLoading} }

func loaded(p profile.Profile) State { return State{Status: StatusLoaded, Profile: &p} }

func errored(a Alert) State { return State{Status: StatusErrored, Alert: &a} }
