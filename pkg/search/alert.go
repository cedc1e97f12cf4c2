package search

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/ghprofile/pkg/profile"
)

// User-facing texts for failed searches.
const (
	NotFoundTitle   = "User not found"
	NotFoundMessage = "User not found. Please enter another name"

	NetworkErrorTitle   = "Network error"
	NetworkErrorMessage = "A network error has occurred. Check your Internet connection and try again later."
)

// Alert is the message a front end shows for a failed search.
// Every alert gets a fresh ID so repeated identical failures stay distinct.
type Alert struct {
	Title   string    `json:"title"`
	Message string    `json:"message"`
	ID      uuid.UUID `json:"-"`
}

// AlertFor turns a fetch error into user-facing text.
// ErrUserNotFound keeps its own message; everything else, including
// invalid responses, reads as a network error.
func AlertFor(err error) Alert {
	if errors.Is(err, profile.ErrUserNotFound) {
		return Alert{ID: uuid.New(), Title: NotFoundTitle, Message: NotFoundMessage}
	}
	return Alert{ID: uuid.New(), Title: NetworkErrorTitle, Message: NetworkErrorMessage}
}
