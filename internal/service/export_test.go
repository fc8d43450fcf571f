package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelez/globetrotter/backend/internal/domain"
	"github.com/avelez/globetrotter/backend/internal/service"
)

type daySourceFunc func(ctx context.Context, tripID uuid.UUID) ([]domain.DayRecord, error)

func (f daySourceFunc) Days(ctx context.Context, tripID uuid.UUID) ([]domain.DayRecord, error) {
	return f(ctx, tripID)
}

func TestExportService_Export_OK(t *testing.T) {
	trip := validTrip()
	trip.ID = uuid.New()

	days := []domain.DayRecord{
		{
			Date: date(2026, time.August, 1), CityName: "Paris",
			Stay: 100, Meals: 45, Transport: 800,
			Activities: []domain.DayActivity{
				{Name: "Louvre", Cost: 40},
				{Name: "Seine Cruise", Cost: 15},
			},
			Total: 1000,
		},
		{
			Date: date(2026, time.August, 2), CityName: "Paris",
			Stay: 100, Meals: 45,
			Activities: []domain.DayActivity{},
			Total:      145,
		},
	}

	svc := service.NewExportService(
		&mockTripRepo{
			getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return trip, nil },
		},
		daySourceFunc(func(_ context.Context, _ uuid.UUID) ([]domain.DayRecord, error) {
			return days, nil
		}),
	)

	rows, err := svc.Export(context.Background(), trip.ID)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, trip.ID.String(), rows[0].TripID)
	assert.Equal(t, "Euro Summer", rows[0].TripName)
	assert.Equal(t, "2026-08-01", rows[0].Date)
	assert.Equal(t, []string{"Louvre (40)", "Seine Cruise (15)"}, rows[0].Activities)
	assert.Equal(t, 55, rows[0].ActivitiesCost)
	assert.Equal(t, 1000, rows[0].DayTotal)

	assert.Empty(t, rows[1].Activities)
	assert.Zero(t, rows[1].ActivitiesCost)
}

func TestExportService_Export_TripNotFound(t *testing.T) {
	svc := service.NewExportService(
		&mockTripRepo{
			getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
				return domain.Trip{}, domain.ErrNotFound
			},
		},
		daySourceFunc(func(_ context.Context, _ uuid.UUID) ([]domain.DayRecord, error) {
			t.Fatal("days must not be fetched for a missing trip")
			return nil, nil
		}),
	)

	_, err := svc.Export(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportService_Export_NotComposed(t *testing.T) {
	trip := validTrip()
	trip.ID = uuid.New()

	svc := service.NewExportService(
		&mockTripRepo{
			getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return trip, nil },
		},
		daySourceFunc(func(_ context.Context, _ uuid.UUID) ([]domain.DayRecord, error) {
			return []domain.DayRecord{}, nil
		}),
	)

	rows, err := svc.Export(context.Background(), trip.ID)

	require.NoError(t, err)
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}
