// Package service contains the business logic for the GlobeTrotter API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls and the plan engine. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avelez/globetrotter/backend/internal/domain"
	"github.com/avelez/globetrotter/backend/internal/plan"
	"github.com/avelez/globetrotter/backend/internal/repo"
)

// TripService implements business logic for Trip operations, including
// composition: turning a trip plus an ordered city selection into a
// persisted stop batch.
type TripService struct {
	trips  repo.TripRepo
	cities repo.CityRepo
	stops  repo.StopRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, cities repo.CityRepo, stops repo.StopRepo) *TripService {
	return &TripService{trips: trips, cities: cities, stops: stops}
}

// Create validates and persists a new trip. Dates are normalized to UTC
// midnight before they reach the store.
// Returns domain.ErrValidation (or the more specific domain.ErrInvalidRange)
// if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.StartDate = plan.DateOf(trip.StartDate)
	trip.EndDate = plan.DateOf(trip.EndDate)

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser returns all trips owned by a user.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPublic returns every trip shared with the community.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPublic(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListPublic: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Delete removes a trip by ID; stops, scheduled activities, and the budget
// cascade in the store.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Compose partitions the trip's calendar across the given cities, in
// order, and replaces the trip's stop batch with the result. Any previous
// stops, and the scheduled activities attached to them, are discarded.
//
// Every city must exist in the catalog. The allocation is validated for
// exact tiling before anything is persisted: a trip with fewer days than
// cities is rejected with domain.ErrValidation rather than stored with
// collapsed stops.
func (s *TripService) Compose(ctx context.Context, tripID uuid.UUID, cityIDs []uuid.UUID) ([]domain.Stop, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Compose: %w", err)
	}

	// Duplicates are allowed (a city can be visited twice); dangling ids are not.
	for _, cityID := range cityIDs {
		if _, err := s.cities.GetByID(ctx, cityID); err != nil {
			return nil, fmt.Errorf("service.TripService.Compose: city %s: %w", cityID, err)
		}
	}

	stops, err := plan.Allocate(trip.StartDate, trip.EndDate, cityIDs)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Compose: %w", err)
	}
	if err := plan.Validate(trip.StartDate, trip.EndDate, stops); err != nil {
		return nil, fmt.Errorf("service.TripService.Compose: %w", err)
	}

	persisted, err := s.stops.Replace(ctx, tripID, stops)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Compose: %w", err)
	}
	return persisted, nil
}

// Stops returns the trip's stop batch in visiting order.
// Always returns a non-nil slice; a trip that was never composed yields an
// empty one.
func (s *TripService) Stops(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.TripService.Stops: %w", err)
	}
	stops, err := s.stops.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Stops: %w", err)
	}
	if stops == nil {
		return []domain.Stop{}, nil
	}
	return stops, nil
}

// validateTrip enforces business rules for trip creation.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - UserID must be set; ownership is explicit, never ambient.
//   - EndDate must not be before StartDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if plan.DateOf(trip.EndDate).Before(plan.DateOf(trip.StartDate)) {
		return fmt.Errorf("service.validateTrip: %w", domain.ErrInvalidRange)
	}
	return nil
}
