package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avelez/globetrotter/backend/internal/domain"
	"github.com/avelez/globetrotter/backend/internal/repo"
)

// CatalogService implements business logic for the city and activity
// catalogs: the read-mostly reference data trips are composed from.
type CatalogService struct {
	cities     repo.CityRepo
	activities repo.ActivityRepo
}

// NewCatalogService constructs a CatalogService backed by the provided repos.
func NewCatalogService(cities repo.CityRepo, activities repo.ActivityRepo) *CatalogService {
	return &CatalogService{cities: cities, activities: activities}
}

// CreateCity validates and persists a new catalog city.
func (s *CatalogService) CreateCity(ctx context.Context, city domain.City) (domain.City, error) {
	if strings.TrimSpace(city.Name) == "" {
		return domain.City{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(city.Country) == "" {
		return domain.City{}, fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if city.CostIndex < 0 {
		return domain.City{}, fmt.Errorf("%w: cost_index must not be negative", domain.ErrValidation)
	}

	result, err := s.cities.Create(ctx, city)
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CatalogService.CreateCity: %w", err)
	}
	return result, nil
}

// ListCities returns the city catalog, most popular first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CatalogService) ListCities(ctx context.Context) ([]domain.City, error) {
	cities, err := s.cities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ListCities: %w", err)
	}
	if cities == nil {
		return []domain.City{}, nil
	}
	return cities, nil
}

// CreateActivity validates and persists a new catalog activity.
// The owning city must exist.
func (s *CatalogService) CreateActivity(ctx context.Context, act domain.Activity) (domain.Activity, error) {
	if strings.TrimSpace(act.Name) == "" {
		return domain.Activity{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(act.Category) == "" {
		return domain.Activity{}, fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if act.AvgCost < 0 {
		return domain.Activity{}, fmt.Errorf("%w: avg_cost must not be negative", domain.ErrValidation)
	}
	if _, err := s.cities.GetByID(ctx, act.CityID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.CatalogService.CreateActivity: %w", err)
	}

	result, err := s.activities.Create(ctx, act)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.CatalogService.CreateActivity: %w", err)
	}
	return result, nil
}

// ListActivities returns catalog activities, optionally filtered to one
// city when cityID is non-nil.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CatalogService) ListActivities(ctx context.Context, cityID *uuid.UUID) ([]domain.Activity, error) {
	var (
		acts []domain.Activity
		err  error
	)
	if cityID != nil {
		acts, err = s.activities.ListByCity(ctx, *cityID)
	} else {
		acts, err = s.activities.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ListActivities: %w", err)
	}
	if acts == nil {
		return []domain.Activity{}, nil
	}
	return acts, nil
}
