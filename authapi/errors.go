package authapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized indicates the server rejected the bearer credential.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries the HTTP status and server-provided message for a
// non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth api: status %d", e.Status)
	}
	return fmt.Sprintf("auth api: status %d: %s", e.Status, e.Message)
}

// Unwrap maps 401 responses onto ErrUnauthorized so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// IsAuthError reports whether err indicates an invalid or expired
// credential, as opposed to a transport or server failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
