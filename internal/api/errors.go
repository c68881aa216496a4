package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches an Error for a 404 response.
var ErrNotFound = errors.New("not found")

// Error is any failed API call: a transport failure (Status 0, Err set), a non-2xx
// status, or an undecodable body (Status set, Err set).
type Error struct {
	Endpoint string
	Status   int
	Body     string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("api %s: %v", e.Endpoint, e.Err)
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("api %s: status %d: %s", e.Endpoint, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("api %s: status %d", e.Endpoint, e.Status)
	default:
		return fmt.Sprintf("api %s: request failed", e.Endpoint)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrNotFound for 404 responses.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Temporary reports whether retrying the same request later might succeed.
func (e *Error) Temporary() bool {
	return (e.Status == 0 && e.Err != nil) || e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}
