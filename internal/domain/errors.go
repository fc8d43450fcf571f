package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// Engine contract violations. Each wraps ErrValidation or ErrNotFound so
// the handler's two-bucket HTTP mapping covers them, while callers can
// still test for the specific condition with errors.Is.
var (
	// ErrInvalidRange means a trip's end date precedes its start date.
	ErrInvalidRange = fmt.Errorf("%w: end date before start date", ErrValidation)

	// ErrEmptySelection means a trip was composed with no cities.
	ErrEmptySelection = fmt.Errorf("%w: no cities selected", ErrValidation)

	// ErrUnknownCity means a stop references a city missing from the catalog.
	ErrUnknownCity = fmt.Errorf("%w: unknown city", ErrNotFound)

	// ErrUnknownActivity means a scheduled activity references a catalog
	// entry that does not exist.
	ErrUnknownActivity = fmt.Errorf("%w: unknown activity", ErrNotFound)

	// ErrDateOutOfRange means an activity was scheduled on a date outside
	// its stop's inclusive date range.
	ErrDateOutOfRange = fmt.Errorf("%w: date outside stop range", ErrValidation)
)

// PersistenceError wraps a failure from the persistence store during a
// write-through operation. It is the only expected-at-runtime failure of
// the itinerary engine: when it is returned, no local derived state has
// been touched.
type PersistenceError struct {
	// Op names the store operation that failed, e.g. "create scheduled activity".
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence: " + e.Op + ": " + e.Err.Error()
}

// Unwrap exposes the underlying store error to errors.Is / errors.As.
func (e *PersistenceError) Unwrap() error { return e.Err }
