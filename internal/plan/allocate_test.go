package plan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelez/globetrotter/backend/internal/domain"
	"github.com/avelez/globetrotter/backend/internal/plan"
)

// ---- helpers ---------------------------------------------------------------

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cityIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

// requireTiling asserts the coverage invariant: stops sorted by order tile
// [start, end] exactly, with each stop beginning the day after the previous
// one ends.
func requireTiling(t *testing.T, start, end time.Time, stops []domain.Stop) {
	t.Helper()
	require.NotEmpty(t, stops)
	assert.True(t, stops[0].StartDate.Equal(start), "first stop must start on trip start")
	assert.True(t, stops[len(stops)-1].EndDate.Equal(end), "last stop must end on trip end")
	for i := 1; i < len(stops); i++ {
		want := stops[i-1].EndDate.AddDate(0, 0, 1)
		assert.True(t, stops[i].StartDate.Equal(want),
			"stop %d must start the day after stop %d ends", i+1, i)
	}
}

// ---- Allocate --------------------------------------------------------------

func TestAllocate_RemainderGoesToLastCity(t *testing.T) {
	// 10 days across 3 cities: base is 3, the last city absorbs the extra day.
	start, end := date(2026, time.August, 1), date(2026, time.August, 10)
	ids := cityIDs(3)

	stops, err := plan.Allocate(start, end, ids)

	require.NoError(t, err)
	require.Len(t, stops, 3)

	assert.True(t, stops[0].StartDate.Equal(date(2026, time.August, 1)))
	assert.True(t, stops[0].EndDate.Equal(date(2026, time.August, 3)))
	assert.True(t, stops[1].StartDate.Equal(date(2026, time.August, 4)))
	assert.True(t, stops[1].EndDate.Equal(date(2026, time.August, 6)))
	assert.True(t, stops[2].StartDate.Equal(date(2026, time.August, 7)))
	assert.True(t, stops[2].EndDate.Equal(date(2026, time.August, 10)))

	for i, s := range stops {
		assert.Equal(t, i+1, s.Order)
		assert.Equal(t, ids[i], s.CityID)
	}
}

func TestAllocate_SingleDaySingleCity(t *testing.T) {
	d := date(2026, time.August, 1)

	stops, err := plan.Allocate(d, d, cityIDs(1))

	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.True(t, stops[0].StartDate.Equal(d))
	assert.True(t, stops[0].EndDate.Equal(d))
	assert.Equal(t, 1, stops[0].Order)
}

func TestAllocate_SingleCitySpansWholeTrip(t *testing.T) {
	start, end := date(2026, time.May, 10), date(2026, time.May, 24)

	stops, err := plan.Allocate(start, end, cityIDs(1))

	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.True(t, stops[0].StartDate.Equal(start))
	assert.True(t, stops[0].EndDate.Equal(end))
}

func TestAllocate_CoverageInvariant(t *testing.T) {
	cases := []struct {
		name   string
		days   int
		cities int
	}{
		{"even split", 9, 3},
		{"remainder one", 10, 3},
		{"remainder large", 13, 5},
		{"one day per city", 4, 4},
		{"two cities", 31, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := date(2026, time.March, 1)
			end := start.AddDate(0, 0, tc.days-1)

			stops, err := plan.Allocate(start, end, cityIDs(tc.cities))

			require.NoError(t, err)
			requireTiling(t, start, end, stops)

			// Day-count invariant: stop spans sum to the trip's length.
			total := 0
			for _, s := range stops {
				total += int(s.EndDate.Sub(s.StartDate).Hours()/24) + 1
			}
			assert.Equal(t, tc.days, total)
		})
	}
}

func TestAllocate_MoreCitiesThanDays(t *testing.T) {
	// 2 days over 3 cities: base is 0. Allocate returns the degenerate
	// stops; rejecting them is the composing caller's decision.
	start, end := date(2026, time.August, 1), date(2026, time.August, 2)

	stops, err := plan.Allocate(start, end, cityIDs(3))

	require.NoError(t, err)
	require.Len(t, stops, 3)
	for _, s := range stops[:2] {
		assert.True(t, s.StartDate.After(s.EndDate), "non-final stops collapse when base is 0")
	}
	assert.True(t, stops[2].EndDate.Equal(end), "last stop still ends on trip end")
}

func TestAllocate_NormalizesTimestamps(t *testing.T) {
	// Wall-clock times and zones must not leak into the allocation.
	loc := time.FixedZone("UTC+9", 9*3600)
	start := time.Date(2026, time.August, 1, 17, 30, 0, 0, loc)
	end := time.Date(2026, time.August, 4, 2, 0, 0, 0, loc)

	stops, err := plan.Allocate(start, end, cityIDs(2))

	require.NoError(t, err)
	assert.True(t, stops[0].StartDate.Equal(date(2026, time.August, 1)))
	assert.True(t, stops[1].EndDate.Equal(date(2026, time.August, 4)))
}

func TestAllocate_EndBeforeStart(t *testing.T) {
	_, err := plan.Allocate(date(2026, time.August, 10), date(2026, time.August, 1), cityIDs(2))

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAllocate_EmptySelection(t *testing.T) {
	_, err := plan.Allocate(date(2026, time.August, 1), date(2026, time.August, 10), nil)

	assert.ErrorIs(t, err, domain.ErrEmptySelection)
}

// ---- Validate --------------------------------------------------------------

func TestValidate_AcceptsAllocatorOutput(t *testing.T) {
	start, end := date(2026, time.August, 1), date(2026, time.August, 10)
	stops, err := plan.Allocate(start, end, cityIDs(3))
	require.NoError(t, err)

	assert.NoError(t, plan.Validate(start, end, stops))
}

func TestValidate_RejectsDegenerateStops(t *testing.T) {
	start, end := date(2026, time.August, 1), date(2026, time.August, 2)
	stops, err := plan.Allocate(start, end, cityIDs(3))
	require.NoError(t, err)

	assert.ErrorIs(t, plan.Validate(start, end, stops), domain.ErrValidation)
}

func TestValidate_RejectsGap(t *testing.T) {
	start, end := date(2026, time.August, 1), date(2026, time.August, 10)
	stops, err := plan.Allocate(start, end, cityIDs(2))
	require.NoError(t, err)

	stops[1].StartDate = stops[1].StartDate.AddDate(0, 0, 1) // one-day gap

	assert.ErrorIs(t, plan.Validate(start, end, stops), domain.ErrValidation)
}

func TestValidate_RejectsWrongSpan(t *testing.T) {
	start, end := date(2026, time.August, 1), date(2026, time.August, 10)
	stops, err := plan.Allocate(start, end, cityIDs(2))
	require.NoError(t, err)

	assert.ErrorIs(t, plan.Validate(start, end.AddDate(0, 0, 1), stops), domain.ErrValidation)
}
