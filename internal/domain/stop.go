package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stop is a contiguous date range during a trip assigned to one city.
// Order is 1-based and dense. For a composed trip, stops sorted by Order
// tile the trip's date range exactly: the first stop starts on the trip's
// start date, the last ends on the trip's end date, and each stop begins
// the day after the previous one ends.
//
// Stops are created in a batch when a trip is composed and are immutable
// afterwards; recomposition replaces the whole batch.
type Stop struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	CityID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Order     int
	CreatedAt time.Time
}
