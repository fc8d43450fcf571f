package domain

import (
	"time"

	"github.com/google/uuid"
)

// CostModel holds the externally configured baseline daily costs.
// The itinerary engine accepts it as a parameter and never hardcodes
// prices, so swapping pricing models requires no engine change.
// All values are whole currency units.
type CostModel struct {
	// StayPerDay is the baseline accommodation cost per calendar day.
	StayPerDay int
	// MealsPerDay is the baseline food cost per calendar day.
	MealsPerDay int
	// TransportSurcharge is a fixed cost applied once, on the first day of
	// the trip.
	TransportSurcharge int
}

// DayActivity is one scheduled activity as it appears on a day record.
type DayActivity struct {
	ScheduledActivityID uuid.UUID
	ActivityID          uuid.UUID
	Name                string
	Category            string
	Cost                int
}

// DayRecord is one calendar day's derived cost and activity view.
// It is recomputed on demand from Stop and ScheduledActivity state and is
// never persisted; day records must not drift from their sources.
// Total is Stay + Meals + Transport plus the cost of every activity.
type DayRecord struct {
	Date       time.Time
	StopID     uuid.UUID
	CityID     uuid.UUID
	CityName   string
	Stay       int
	Meals      int
	Transport  int
	Activities []DayActivity
	Total      int
}
