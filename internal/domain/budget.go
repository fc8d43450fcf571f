package domain

import (
	"time"

	"github.com/google/uuid"
)

// Budget is the user-declared spending target for a trip.
// At most one row exists per trip; setting it again overwrites the amount.
type Budget struct {
	TripID          uuid.UUID
	EstimatedBudget int
	UpdatedAt       time.Time
}

// BudgetBreakdown is the category-summed cost view over a trip's day
// records. GrandTotal is always the sum of the four category totals.
// Purely derived; recompute after any itinerary change.
type BudgetBreakdown struct {
	Transport  int `json:"transport"`
	Stay       int `json:"stay"`
	Meals      int `json:"meals"`
	Activities int `json:"activities"`
	GrandTotal int `json:"grand_total"`
}

// BudgetReport pairs the computed breakdown with the user's declared
// budget. Remaining is EstimatedBudget − GrandTotal and goes negative when
// the itinerary costs more than planned. EstimatedBudget and Remaining are
// zero-valued when no budget has been declared.
type BudgetReport struct {
	Breakdown       BudgetBreakdown
	EstimatedBudget int
	Remaining       int
}
