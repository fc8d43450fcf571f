package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a catalog entry for something a traveller can do in a city.
// AvgCost is a non-negative estimate in whole currency units.
// Catalog entries are read-only reference data as far as the itinerary
// engine is concerned.
type Activity struct {
	ID            uuid.UUID
	CityID        uuid.UUID
	Name          string
	Category      string
	AvgCost       int
	DurationHours int
	CreatedAt     time.Time
}

// ScheduledActivity binds a catalog activity to one specific date within a
// stop. The date must fall inside the owning stop's inclusive range.
// Rows are only ever created or removed, never mutated.
type ScheduledActivity struct {
	ID         uuid.UUID
	StopID     uuid.UUID
	ActivityID uuid.UUID
	Date       time.Time
	CreatedAt  time.Time
}
