package plan

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelez/globetrotter/backend/internal/domain"
)

// Allocate partitions the inclusive date range [tripStart, tripEnd] across
// the given cities, in order, and returns one stop per city with a dense
// 1-based order index.
//
// Each city receives floor(totalDays / n) days, except the last, whose end
// date is forced to tripEnd so the stops always tile the trip exactly with
// no gap or overlap. The last city therefore absorbs any remainder days,
// a deliberate tie-break, e.g. 10 days over 3 cities yields 3+3+4.
//
// When there are more cities than days the per-city share is zero and every
// stop except the last comes back with start after end. Allocate does not
// reject that itself; the composing caller decides whether such a trip is
// acceptable before persisting anything.
//
// Pure function: no side effects, TripID and ID left zero for the caller
// to fill in at persistence time.
//
// Returns domain.ErrInvalidRange when tripStart is after tripEnd and
// domain.ErrEmptySelection when cityIDs is empty.
func Allocate(tripStart, tripEnd time.Time, cityIDs []uuid.UUID) ([]domain.Stop, error) {
	start, end := DateOf(tripStart), DateOf(tripEnd)
	if start.After(end) {
		return nil, fmt.Errorf("plan.Allocate: %w", domain.ErrInvalidRange)
	}
	if len(cityIDs) == 0 {
		return nil, fmt.Errorf("plan.Allocate: %w", domain.ErrEmptySelection)
	}

	totalDays := daysBetween(start, end) + 1
	n := len(cityIDs)
	base := totalDays / n

	stops := make([]domain.Stop, n)
	for i, cityID := range cityIDs {
		stopStart := addDays(start, i*base)
		stopEnd := addDays(stopStart, base-1)
		if i == n-1 {
			stopEnd = end
		}
		stops[i] = domain.Stop{
			CityID:    cityID,
			StartDate: stopStart,
			EndDate:   stopEnd,
			Order:     i + 1,
		}
	}
	return stops, nil
}

// Validate checks that stops, sorted by order, tile [tripStart, tripEnd]
// exactly: first stop starts on tripStart, last ends on tripEnd, and each
// stop begins the day after the previous one ends. It also rejects
// degenerate stops (start after end), which Allocate produces when a trip
// has fewer days than cities.
//
// Callers run this before persisting a stop batch so a malformed batch can
// never reach the store.
func Validate(tripStart, tripEnd time.Time, stops []domain.Stop) error {
	if len(stops) == 0 {
		return fmt.Errorf("plan.Validate: %w", domain.ErrEmptySelection)
	}

	start, end := DateOf(tripStart), DateOf(tripEnd)
	for i, s := range stops {
		if s.Order != i+1 {
			return fmt.Errorf("%w: stop order must be dense and 1-based", domain.ErrValidation)
		}
		if s.StartDate.After(s.EndDate) {
			return fmt.Errorf("%w: trip has fewer days than cities", domain.ErrValidation)
		}
		if i > 0 && !s.StartDate.Equal(addDays(stops[i-1].EndDate, 1)) {
			return fmt.Errorf("%w: stops must be contiguous", domain.ErrValidation)
		}
	}
	if !stops[0].StartDate.Equal(start) {
		return fmt.Errorf("%w: first stop must start on the trip start date", domain.ErrValidation)
	}
	if !stops[len(stops)-1].EndDate.Equal(end) {
		return fmt.Errorf("%w: last stop must end on the trip end date", domain.ErrValidation)
	}
	return nil
}
