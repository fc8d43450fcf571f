// Package plan implements the itinerary composition and budget aggregation
// engine: allocating calendar days to cities, expanding stops into day
// records, scheduling activities with write-through persistence, and folding
// day records into a budget breakdown.
//
// Everything here is a pure function of its inputs except Itinerary's
// schedule/unschedule write-through step. No SQL and no HTTP; persistence
// is reached only through the Store interface.
package plan

import "time"

// DateOf truncates t to a calendar date: UTC midnight.
// All engine date arithmetic is timezone-naive and operates on these
// normalized values, so a date compares equal regardless of the wall-clock
// time or zone it arrived with.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addDays returns the date n calendar days after d.
func addDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// daysBetween returns the number of calendar days from a to b.
// Both arguments must already be UTC midnights. Negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
