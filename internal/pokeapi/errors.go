package pokeapi

import (
	"errors"
	"fmt"
)

// Common catalogue API errors.
var (
	// ErrNotFound is returned when an entry or page does not exist.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited is returned on HTTP 429.
	ErrRateLimited = errors.New("rate limited by catalogue service")
)

// StatusError is any other non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalogue API error %d", e.Code)
	}
	return fmt.Sprintf("catalogue API error %d: %s", e.Code, e.Body)
}
