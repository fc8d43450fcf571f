package domain

import (
	"time"

	"github.com/google/uuid"
)

// City is a catalog entry describing a destination city.
// CostIndex is a relative price level (100 = baseline); PopularityScore
// orders cities in discovery listings. Both are reference data; the
// itinerary engine never derives costs from them.
type City struct {
	ID              uuid.UUID
	Name            string
	Country         string
	CostIndex       int
	PopularityScore int
	CreatedAt       time.Time
}
