package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// getProfile serves GET /api/profiles/{username}?refresh=true.
func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	refresh := false
	if v := r.URL.Query().Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, s.opts.logger, newHTTPError(http.StatusBadRequest,
				"Invalid request", "refresh must be true or false."))
			return
		}
		refresh = b
	}

	p, err := s.profiles.FetchProfile(r.Context(), username, refresh)
	if err != nil {
		writeError(w, r, s.opts.logger, fetchError(err))
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// invalidateProfile serves DELETE /api/profiles/{username}/cache.
func (s *Server) invalidateProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := s.profiles.Invalidate(r.Context(), username); err != nil {
		e := newHTTPError(http.StatusServiceUnavailable, "Cache unavailable", "The profile cache could not be updated.")
		e.Err = err
		writeError(w, r, s.opts.logger, e)
		return
	}

	s.opts.logger.InfoContext(r.Context(), "profile cache entry dropped", slog.String("username", username))
	w.WriteHeader(http.StatusNoContent)
}

// clearCache serves DELETE /api/cache.
func (s *Server) clearCache(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.ClearCache(r.Context()); err != nil {
		e := newHTTPError(http.StatusServiceUnavailable, "Cache unavailable", "The profile cache could not be cleared.")
		e.Err = err
		writeError(w, r, s.opts.logger, e)
		return
	}

	s.opts.logger.InfoContext(r.Context(), "profile cache cleared")
	w.WriteHeader(http.StatusNoContent)
}
