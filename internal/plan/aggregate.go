package plan

import "github.com/avelez/globetrotter/backend/internal/domain"

// Aggregate folds day records into a category-level budget breakdown.
// Pure and memoization-free: callers re-aggregate after any itinerary
// mutation. The grand total always reconciles with the sum of each day's
// own precomputed total.
func Aggregate(days []domain.DayRecord) domain.BudgetBreakdown {
	var b domain.BudgetBreakdown
	for _, d := range days {
		b.Transport += d.Transport
		b.Stay += d.Stay
		b.Meals += d.Meals
		for _, a := range d.Activities {
			b.Activities += a.Cost
		}
	}
	b.GrandTotal = b.Transport + b.Stay + b.Meals + b.Activities
	return b
}
