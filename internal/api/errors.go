package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when a 401 could not be resolved by a token
// refresh. The token store has already been cleared when this is returned.
var ErrSessionExpired = errors.New("session expired")

// APIError carries a non-2xx response back to the caller. Message prefers the
// server-supplied "message" field, then the raw body, then the status text.
type APIError struct {
	Status  int
	Message string
	Payload any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
