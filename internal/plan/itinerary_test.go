package plan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelez/globetrotter/backend/internal/domain"
	"github.com/avelez/globetrotter/backend/internal/plan"
)

// ---- mock store ------------------------------------------------------------

// mockStore is a hand-written test double for plan.Store.
// It counts calls so tests can assert the store was (or was not) reached.
type mockStore struct {
	create func(ctx context.Context, sa domain.ScheduledActivity) (domain.ScheduledActivity, error)
	delete func(ctx context.Context, id uuid.UUID) error

	createCalls int
	deleteCalls int
}

func (m *mockStore) Create(ctx context.Context, sa domain.ScheduledActivity) (domain.ScheduledActivity, error) {
	m.createCalls++
	return m.create(ctx, sa)
}

func (m *mockStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalls++
	return m.delete(ctx, id)
}

// compile-time check: mockStore must satisfy plan.Store.
var _ plan.Store = (*mockStore)(nil)

// okStore returns a store whose Create echoes the input with a fresh ID and
// whose Delete always succeeds.
func okStore() *mockStore {
	return &mockStore{
		create: func(_ context.Context, sa domain.ScheduledActivity) (domain.ScheduledActivity, error) {
			sa.ID = uuid.New()
			sa.CreatedAt = time.Now().UTC()
			return sa, nil
		},
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// ---- helpers ---------------------------------------------------------------

// snapshot deep-copies day records so a test can compare pre/post state.
func snapshot(days []domain.DayRecord) []domain.DayRecord {
	out := make([]domain.DayRecord, len(days))
	for i, d := range days {
		out[i] = d
		out[i].Activities = append([]domain.DayActivity{}, d.Activities...)
	}
	return out
}

func newItinerary(t *testing.T) (*plan.Itinerary, []domain.Stop) {
	t.Helper()
	stops, cities := composedTrip(t)
	days, err := plan.Expand(stops, cities, testCostModel)
	require.NoError(t, err)
	return plan.NewItinerary(days), stops
}

func louvre() domain.Activity {
	return domain.Activity{ID: uuid.New(), Name: "Louvre", Category: "Culture", AvgCost: 40}
}

// ---- Schedule --------------------------------------------------------------

func TestItinerary_Schedule_MergesOnSuccess(t *testing.T) {
	it, stops := newItinerary(t)
	store := okStore()
	act := louvre()

	created, err := it.Schedule(context.Background(), store, stops[0], act, date(2026, time.August, 2))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, stops[0].ID, created.StopID)
	assert.Equal(t, 1, store.createCalls)

	day, ok := it.Day(date(2026, time.August, 2))
	require.True(t, ok)
	require.Len(t, day.Activities, 1)
	assert.Equal(t, created.ID, day.Activities[0].ScheduledActivityID)
	assert.Equal(t, 40, day.Activities[0].Cost)
	assert.Equal(t, 185, day.Total)
}

func TestItinerary_Schedule_DateOutsideStop(t *testing.T) {
	it, stops := newItinerary(t)
	store := okStore()

	// Aug 5 is inside the trip but belongs to the second stop.
	_, err := it.Schedule(context.Background(), store, stops[0], louvre(), date(2026, time.August, 5))

	assert.ErrorIs(t, err, domain.ErrDateOutOfRange)
	assert.Zero(t, store.createCalls, "store must not be called for an invalid date")
}

func TestItinerary_Schedule_StoreFailureLeavesViewUntouched(t *testing.T) {
	it, stops := newItinerary(t)
	before := snapshot(it.Days())

	backendDown := errors.New("connection refused")
	store := &mockStore{
		create: func(_ context.Context, _ domain.ScheduledActivity) (domain.ScheduledActivity, error) {
			return domain.ScheduledActivity{}, backendDown
		},
	}

	_, err := it.Schedule(context.Background(), store, stops[0], louvre(), date(2026, time.August, 2))

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, backendDown)
	assert.Equal(t, before, it.Days(), "no partial success: failed write must not change the view")
}

func TestItinerary_Schedule_AtMostOneAttempt(t *testing.T) {
	it, stops := newItinerary(t)
	store := &mockStore{
		create: func(_ context.Context, _ domain.ScheduledActivity) (domain.ScheduledActivity, error) {
			return domain.ScheduledActivity{}, errors.New("timeout")
		},
	}

	_, _ = it.Schedule(context.Background(), store, stops[0], louvre(), date(2026, time.August, 1))

	assert.Equal(t, 1, store.createCalls, "no internal retries")
}

// ---- Unschedule ------------------------------------------------------------

func TestItinerary_ScheduleUnscheduleRoundTrip(t *testing.T) {
	it, stops := newItinerary(t)
	store := okStore()
	before := snapshot(it.Days())

	created, err := it.Schedule(context.Background(), store, stops[0], louvre(), date(2026, time.August, 2))
	require.NoError(t, err)

	err = it.Unschedule(context.Background(), store, created.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, store.deleteCalls)
	assert.Equal(t, before, it.Days(), "unschedule must restore the pre-schedule view exactly")
}

func TestItinerary_Unschedule_NotFound(t *testing.T) {
	it, _ := newItinerary(t)
	store := okStore()

	err := it.Unschedule(context.Background(), store, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, store.deleteCalls)
}

func TestItinerary_Unschedule_StoreFailureLeavesViewUntouched(t *testing.T) {
	it, stops := newItinerary(t)
	store := okStore()

	created, err := it.Schedule(context.Background(), store, stops[0], louvre(), date(2026, time.August, 3))
	require.NoError(t, err)
	before := snapshot(it.Days())

	store.delete = func(_ context.Context, _ uuid.UUID) error { return errors.New("backend unavailable") }

	err = it.Unschedule(context.Background(), store, created.ID)

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, before, it.Days())
}
