package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelez/globetrotter/backend/internal/domain"
	"github.com/avelez/globetrotter/backend/internal/repo"
)

// seedTrip inserts a trip and one city over the given transaction and
// returns both, satisfying the foreign keys stop rows need.
func seedTrip(t *testing.T, tx pgx.Tx) (domain.Trip, domain.City) {
	t.Helper()
	ctx := context.Background()

	trip, err := repo.NewTripRepo(tx).Create(ctx, tripFixture())
	require.NoError(t, err, "seed trip")

	city, err := repo.NewCityRepo(tx).Create(ctx, domain.City{
		Name: "Paris", Country: "France", CostIndex: 110, PopularityScore: 95,
	})
	require.NoError(t, err, "seed city")

	return trip, city
}

// stopsFixture builds a three-stop tiling of the trip's date range.
func stopsFixture(trip domain.Trip, cityID uuid.UUID) []domain.Stop {
	day := func(n int) time.Time { return trip.StartDate.AddDate(0, 0, n) }
	return []domain.Stop{
		{TripID: trip.ID, CityID: cityID, StartDate: day(0), EndDate: day(2), Order: 1},
		{TripID: trip.ID, CityID: cityID, StartDate: day(3), EndDate: day(5), Order: 2},
		{TripID: trip.ID, CityID: cityID, StartDate: day(6), EndDate: day(9), Order: 3},
	}
}

func TestStopRepo_Replace(t *testing.T) {
	tx := newTestTx(t)
	trip, city := seedTrip(t, tx)
	r := repo.NewStopRepo(tx)
	ctx := context.Background()

	got, err := r.Replace(ctx, trip.ID, stopsFixture(trip, city.ID))

	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, st := range got {
		assert.NotEqual(t, uuid.Nil, st.ID, "stop %d should get a DB-generated ID", i)
		assert.Equal(t, i+1, st.Order)
		assert.False(t, st.CreatedAt.IsZero())
	}
}

func TestStopRepo_Replace_DiscardsPreviousBatch(t *testing.T) {
	tx := newTestTx(t)
	trip, city := seedTrip(t, tx)
	r := repo.NewStopRepo(tx)
	ctx := context.Background()

	_, err := r.Replace(ctx, trip.ID, stopsFixture(trip, city.ID))
	require.NoError(t, err)

	// Recompose with a single stop covering the whole range.
	single := []domain.Stop{{
		TripID: trip.ID, CityID: city.ID,
		StartDate: trip.StartDate, EndDate: trip.EndDate, Order: 1,
	}}
	_, err = r.Replace(ctx, trip.ID, single)
	require.NoError(t, err)

	got, err := r.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, got, 1, "recomposition must replace the whole batch")
}

func TestStopRepo_Replace_UnknownCity_FKViolation(t *testing.T) {
	tx := newTestTx(t)
	trip, _ := seedTrip(t, tx)
	r := repo.NewStopRepo(tx)

	stops := stopsFixture(trip, uuid.New()) // city never inserted
	_, err := r.Replace(context.Background(), trip.ID, stops)

	// The foreign key violation maps to ErrNotFound.
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopRepo_Replace_FailureKeepsPreviousBatch(t *testing.T) {
	tx := newTestTx(t)
	trip, city := seedTrip(t, tx)
	r := repo.NewStopRepo(tx)
	ctx := context.Background()

	_, err := r.Replace(ctx, trip.ID, stopsFixture(trip, city.ID))
	require.NoError(t, err)

	// Second stop references a missing city, so the whole batch must fail.
	bad := stopsFixture(trip, city.ID)
	bad[1].CityID = uuid.New()
	_, err = r.Replace(ctx, trip.ID, bad)
	require.Error(t, err)

	got, err := r.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, got, 3, "failed replace must leave the previous batch intact")
}

func TestStopRepo_ListByTrip_OrderedByStopOrder(t *testing.T) {
	tx := newTestTx(t)
	trip, city := seedTrip(t, tx)
	r := repo.NewStopRepo(tx)
	ctx := context.Background()

	_, err := r.Replace(ctx, trip.ID, stopsFixture(trip, city.ID))
	require.NoError(t, err)

	got, err := r.ListByTrip(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, st := range got {
		assert.Equal(t, i+1, st.Order)
	}
}

func TestStopRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewStopRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
