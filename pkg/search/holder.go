package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/ghprofile/pkg/profile"
)

// Fetcher is the profile store surface a Holder drives.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string, forceRefresh bool) (profile.Profile, error)
}

// Holder sequences the Idle, Loading, Loaded and Errored states around
// profile fetches. It is safe for concurrent use.
type Holder struct {
	fetcher Fetcher
	opts    *options
	state   State
	mu      sync.Mutex
}

// New creates a Holder in the Idle state.
func New(f Fetcher, opts ...Option) *Holder {
	return &Holder{
		fetcher: f,
		opts:    newOptions(opts...),
		state:   idle(),
	}
}

// State returns the current snapshot.
func (h *Holder) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// CanSearch reports whether Search(username) would start a fetch.
func (h *Holder) CanSearch(username string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canSearch(username)
}

// Search fetches the profile of username and blocks until the holder
// reaches Loaded or Errored. It is a no-op returning false when the input is
// blank or another search is loading. A search aborted by ctx returns the
// holder to Idle instead of reporting an error.
func (h *Holder) Search(ctx context.Context, username string) bool {
	return h.run(ctx, username, false)
}

// Refresh is Search with the cache bypassed.
func (h *Holder) Refresh(ctx context.Context, username string) bool {
	return h.run(ctx, username, true)
}

func (h *Holder) run(ctx context.Context, username string, forceRefresh bool) bool {
	h.mu.Lock()
	if !h.canSearch(username) {
		h.mu.Unlock()
		return false
	}
	h.set(loading())
	h.mu.Unlock()

	name := strings.TrimSpace(username)
	p, err := h.fetcher.FetchProfile(ctx, name, forceRefresh)

	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case err == nil:
		h.set(loaded(p))
	case ctx.Err() != nil:
		h.opts.logger.DebugContext(ctx, "profile search cancelled", slog.String("username", name))
		h.set(idle())
	default:
		alert := AlertFor(err)
		h.opts.logger.InfoContext(ctx, "profile search failed",
			slog.String("username", name),
			slog.String("alert_id", alert.ID.String()),
			slog.String("error", err.Error()),
		)
		h.set(errored(alert))
	}

	return true
}

// Dismiss leaves the Loaded state. Other states are unchanged.
func (h *Holder) Dismiss() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Status == StatusLoaded {
		h.set(idle())
	}
}

// ClearError leaves the Errored state. Other states are unchanged.
func (h *Holder) ClearError() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Status == StatusErrored {
		h.set(idle())
	}
}

func (h *Holder) canSearch(username string) bool {
	return strings.TrimSpace(username) != "" && h.state.Status != StatusLoading
}

// set must be called with mu held. Observers run under the lock, so they
// see transitions in order and must not call back into the Holder.
func (h *Holder) set(s State) {
	h.state = s
	for _, fn := range h.opts.observers {
		fn(s)
	}
}
