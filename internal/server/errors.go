package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/ghprofile/pkg/logger"
	"github.com/dmitrymomot/ghprofile/pkg/profile"
	"github.com/dmitrymomot/ghprofile/pkg/search"
)

// ErrListen is returned by Run when the address cannot be bound.
var ErrListen = errors.New("server: failed to listen")

// HTTPError is an error with everything needed to render it.
type HTTPError struct {
	Err     error  `json:"-"` // cause, logged but never sent
	Title   string `json:"title"`
	Message string `json:"message"`
	Code    int    `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func newHTTPError(code int, title, message string) *HTTPError {
	return &HTTPError{Code: code, Title: title, Message: message}
}

// fetchError maps a profile error to a response. Texts come from
// search.AlertFor so the API reads like every other front end.
func fetchError(err error) *HTTPError {
	alert := search.AlertFor(err)

	code := http.StatusBadGateway
	if errors.Is(err, profile.ErrUserNotFound) {
		code = http.StatusNotFound
	}

	return &HTTPError{Code: code, Title: alert.Title, Message: alert.Message, Err: err}
}

type errorBody struct {
	Error     *HTTPError `json:"error"`
	RequestID string     `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, e *HTTPError) {
	if e.Err != nil {
		level := slog.LevelWarn
		if e.Code >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.Log(r.Context(), level, "request failed",
			slog.Int("status", e.Code),
			slog.String("error", e.Err.Error()),
		)
	}

	writeJSON(w, e.Code, errorBody{Error: e, RequestID: logger.RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
