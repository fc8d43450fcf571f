package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelez/globetrotter/backend/internal/domain"
	"github.com/avelez/globetrotter/backend/internal/plan"
	"github.com/avelez/globetrotter/backend/internal/repo"
)

// ItineraryService assembles day-by-day itinerary views and mediates
// activity scheduling through the plan engine's write-through path.
// Views are recomputed from canonical Stop and ScheduledActivity state on
// every call; nothing derived is cached across writes.
type ItineraryService struct {
	trips      repo.TripRepo
	stops      repo.StopRepo
	cities     repo.CityRepo
	activities repo.ActivityRepo
	scheduled  repo.ScheduledActivityRepo
	budgets    repo.BudgetRepo
	costs      domain.CostModel
}

// NewItineraryService constructs an ItineraryService backed by the provided
// repos and the configured cost model.
func NewItineraryService(
	trips repo.TripRepo,
	stops repo.StopRepo,
	cities repo.CityRepo,
	activities repo.ActivityRepo,
	scheduled repo.ScheduledActivityRepo,
	budgets repo.BudgetRepo,
	costs domain.CostModel,
) *ItineraryService {
	return &ItineraryService{
		trips:      trips,
		stops:      stops,
		cities:     cities,
		activities: activities,
		scheduled:  scheduled,
		budgets:    budgets,
		costs:      costs,
	}
}

// Days returns one day record per calendar day of the trip, date ascending,
// with scheduled activities merged in. A trip that has not been composed
// yet yields an empty (non-nil) slice.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ItineraryService) Days(ctx context.Context, tripID uuid.UUID) ([]domain.DayRecord, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}

	stops, err := s.stops.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}
	if len(stops) == 0 {
		return []domain.DayRecord{}, nil
	}

	cities, err := s.cities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}

	days, err := plan.Expand(stops, cities, s.costs)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}

	scheduled, err := s.scheduled.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}
	if len(scheduled) == 0 {
		return days, nil
	}

	catalog, err := s.activities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}
	if err := plan.Merge(days, scheduled, catalog); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}
	return days, nil
}

// Schedule attaches a catalog activity to a specific date within a stop.
// The write goes through the store first; the day view is only an output
// here, so a store failure surfaces as *domain.PersistenceError with
// nothing half-applied. The updated day record for the date is returned
// alongside the persisted row.
//
// Returns domain.ErrNotFound for a dangling stop or activity id and
// domain.ErrDateOutOfRange when the date falls outside the stop's span.
func (s *ItineraryService) Schedule(ctx context.Context, stopID, activityID uuid.UUID, date time.Time) (domain.ScheduledActivity, domain.DayRecord, error) {
	stop, err := s.stops.GetByID(ctx, stopID)
	if err != nil {
		return domain.ScheduledActivity{}, domain.DayRecord{}, fmt.Errorf("service.ItineraryService.Schedule: %w", err)
	}
	act, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return domain.ScheduledActivity{}, domain.DayRecord{}, fmt.Errorf("service.ItineraryService.Schedule: %w", err)
	}

	days, err := s.Days(ctx, stop.TripID)
	if err != nil {
		return domain.ScheduledActivity{}, domain.DayRecord{}, err
	}

	it := plan.NewItinerary(days)
	created, err := it.Schedule(ctx, s.scheduled, stop, act, date)
	if err != nil {
		return domain.ScheduledActivity{}, domain.DayRecord{}, fmt.Errorf("service.ItineraryService.Schedule: %w", err)
	}

	day, _ := it.Day(date)
	return created, day, nil
}

// Unschedule removes a scheduled activity, deleting from the store first.
// Returns domain.ErrNotFound if the scheduled activity does not exist and
// *domain.PersistenceError if the store delete fails.
func (s *ItineraryService) Unschedule(ctx context.Context, scheduledID uuid.UUID) error {
	sa, err := s.scheduled.GetByID(ctx, scheduledID)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.Unschedule: %w", err)
	}
	stop, err := s.stops.GetByID(ctx, sa.StopID)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.Unschedule: %w", err)
	}

	days, err := s.Days(ctx, stop.TripID)
	if err != nil {
		return err
	}

	it := plan.NewItinerary(days)
	if err := it.Unschedule(ctx, s.scheduled, scheduledID); err != nil {
		return fmt.Errorf("service.ItineraryService.Unschedule: %w", err)
	}
	return nil
}

// Budget recomputes the trip's cost breakdown from its current day records
// and pairs it with the user's declared budget, if any.
func (s *ItineraryService) Budget(ctx context.Context, tripID uuid.UUID) (domain.BudgetReport, error) {
	days, err := s.Days(ctx, tripID)
	if err != nil {
		return domain.BudgetReport{}, fmt.Errorf("service.ItineraryService.Budget: %w", err)
	}

	report := domain.BudgetReport{Breakdown: plan.Aggregate(days)}

	declared, err := s.budgets.GetByTrip(ctx, tripID)
	switch {
	case err == nil:
		report.EstimatedBudget = declared.EstimatedBudget
		report.Remaining = declared.EstimatedBudget - report.Breakdown.GrandTotal
	case errors.Is(err, domain.ErrNotFound):
		// No declared budget; report the breakdown alone.
	default:
		return domain.BudgetReport{}, fmt.Errorf("service.ItineraryService.Budget: %w", err)
	}
	return report, nil
}

// SetBudget declares or overwrites the trip's spending target.
func (s *ItineraryService) SetBudget(ctx context.Context, tripID uuid.UUID, amount int) (domain.Budget, error) {
	if amount < 0 {
		return domain.Budget{}, fmt.Errorf("%w: estimated_budget must not be negative", domain.ErrValidation)
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return domain.Budget{}, fmt.Errorf("service.ItineraryService.SetBudget: %w", err)
	}

	result, err := s.budgets.Upsert(ctx, domain.Budget{TripID: tripID, EstimatedBudget: amount})
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.ItineraryService.SetBudget: %w", err)
	}
	return result, nil
}
