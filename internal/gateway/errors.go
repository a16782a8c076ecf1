package gateway

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two auth outcomes the screens branch on and for
// transport-level failure. Everything else surfaces as an *APIError.
var (
	// ErrUnauthorized means the backend rejected the credential. By the
	// time a caller sees this the session has already been cleared by the
	// unauthorized hook.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden means the action is not permitted for this principal.
	// The session stays intact.
	ErrForbidden = errors.New("access denied")

	// ErrUnavailable means the request never produced a response.
	ErrUnavailable = errors.New("no response from server, check your connection")
)

// APIError carries the backend's human-readable message for non-auth
// failures so screens can show it verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
