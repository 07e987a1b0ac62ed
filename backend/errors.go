package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyBaseURL is returned by NewClient when no backend URL is configured.
	ErrEmptyBaseURL = errors.New("backend base URL must not be empty")
)

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err wraps a 404 response.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
