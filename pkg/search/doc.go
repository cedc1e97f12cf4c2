// Package search is the front-end-neutral state machine around profile
// lookups.
//
//	Idle --Search--> Loading --ok--> Loaded --Dismiss--> Idle
//	                         --err-> Errored --ClearError--> Idle
//
// A [Holder] owns no rendering. Front ends read [Holder.State] or subscribe
// with [WithObserver]; the CLI and the HTTP API both use [AlertFor] so that a
// missing user and a network problem read the same everywhere.
package search
