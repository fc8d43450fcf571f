package domain

// ExportRow is a single row in a trip's itinerary export.
// It is a flat, denormalized view: one row per calendar day, with trip
// fields repeated on every row.
//
// Activities holds a "Name (cost)" string per scheduled activity, in
// itinerary order. Callers that need a joined string (e.g. CSV) should
// join with "|".
type ExportRow struct {
	// Trip fields, repeated for every day of the trip.
	TripID   string `json:"trip_id"`
	TripName string `json:"trip_name"`

	// Day fields.
	Date           string   `json:"date"` // "2006-01-02" formatted date
	City           string   `json:"city"`
	Stay           int      `json:"stay"`
	Meals          int      `json:"meals"`
	Transport      int      `json:"transport"`
	Activities     []string `json:"activities"`
	ActivitiesCost int      `json:"activities_cost"`
	DayTotal       int      `json:"day_total"`
}
