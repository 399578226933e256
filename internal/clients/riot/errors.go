package riot

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Returned errors wrap exactly one of these.
var (
	// ErrNotFound means the player, match or standing does not exist
	ErrNotFound = errors.New("riot: not found")

	// ErrTransient covers network failures, rate limiting and server errors
	ErrTransient = errors.New("riot: transient failure")

	// ErrFatal means the API key or request configuration is invalid
	ErrFatal = errors.New("riot: fatal failure")
)

// Kind returns a short label for an error's class, used in logs and metrics
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrFatal):
		return "fatal"
	default:
		return "transient"
	}
}

// IsFatal reports whether err should stop the process
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// statusError maps an HTTP status to the error taxonomy. The response body is
// included for diagnostics; it never carries the API key.
func statusError(status int, body string) error {
	var kind error
	switch {
	case status == http.StatusNotFound, status == http.StatusBadRequest:
		kind = ErrNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		kind = ErrFatal
	default:
		kind = ErrTransient
	}
	return fmt.Errorf("%w: status %d: %s", kind, status, body)
}
