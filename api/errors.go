package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches a 404 from the API via errors.Is.
var ErrNotFound = errors.New("not found")

// StatusError is returned for every non-2xx response. The body is not parsed
// for structured error codes.
type StatusError struct {
	Op     string
	Status int
	Text   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: API error: %d %s", e.Op, e.Status, e.Text)
}

// Is reports 404 responses as ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}
