package client

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnauthorized marks a 401 from any endpoint: the session token is
// invalid or expired. It is the only error that triggers a global session
// teardown.
var ErrUnauthorized = errors.New("session token rejected")

// APIError is a non-401 HTTP error response from the backend.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsAuthError reports whether err means the session must be torn down.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsCanceled reports whether err arose from a superseded or abandoned
// request. Canceled fetches are not failures; callers discard them without
// any user-visible effect.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsTransient reports whether err is a network fault or 5xx worth a
// non-blocking toast. Background polls log these and stay quiet.
func IsTransient(err error) bool {
	if err == nil || IsCanceled(err) || IsAuthError(err) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	// Anything else that reached the wire and failed: DNS, refused
	// connection, reset mid-body.
	return true
}
