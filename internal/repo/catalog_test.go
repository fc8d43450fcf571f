package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelez/globetrotter/backend/internal/domain"
	"github.com/avelez/globetrotter/backend/internal/repo"
)

func TestCityRepo_Create(t *testing.T) {
	r := repo.NewCityRepo(newTestTx(t))

	got, err := r.Create(context.Background(), domain.City{
		Name: "Lisbon", Country: "Portugal", CostIndex: 62, PopularityScore: 80,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Lisbon", got.Name)
	assert.Equal(t, 62, got.CostIndex)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCityRepo_List_OrderedByPopularity(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewCityRepo(tx)
	ctx := context.Background()

	quiet, err := r.Create(ctx, domain.City{Name: "Ghent", Country: "Belgium", CostIndex: 70, PopularityScore: 10})
	require.NoError(t, err)
	busy, err := r.Create(ctx, domain.City{Name: "Barcelona", Country: "Spain", CostIndex: 85, PopularityScore: 99})
	require.NoError(t, err)

	got, err := r.List(ctx)

	require.NoError(t, err)

	// Both cities appear, the popular one first.
	positions := map[uuid.UUID]int{}
	for i, c := range got {
		positions[c.ID] = i
	}
	require.Contains(t, positions, quiet.ID)
	require.Contains(t, positions, busy.ID)
	assert.Less(t, positions[busy.ID], positions[quiet.ID])
}

func TestActivityRepo_Create_UnknownCity_FKViolation(t *testing.T) {
	r := repo.NewActivityRepo(newTestTx(t))

	_, err := r.Create(context.Background(), domain.Activity{
		CityID: uuid.New(), Name: "Louvre", Category: "culture", AvgCost: 40,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityRepo_Create_NegativeCost_CheckConstraint(t *testing.T) {
	tx := newTestTx(t)
	_, city := seedTrip(t, tx)
	r := repo.NewActivityRepo(tx)

	_, err := r.Create(context.Background(), domain.Activity{
		CityID: city.ID, Name: "Louvre", Category: "culture", AvgCost: -1,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityRepo_ListByCity(t *testing.T) {
	tx := newTestTx(t)
	_, city := seedTrip(t, tx)
	cityRepo := repo.NewCityRepo(tx)
	r := repo.NewActivityRepo(tx)
	ctx := context.Background()

	other, err := cityRepo.Create(ctx, domain.City{Name: "Rome", Country: "Italy", CostIndex: 90})
	require.NoError(t, err)

	mine, err := r.Create(ctx, domain.Activity{CityID: city.ID, Name: "Louvre", Category: "culture", AvgCost: 40})
	require.NoError(t, err)
	_, err = r.Create(ctx, domain.Activity{CityID: other.ID, Name: "Colosseum", Category: "culture", AvgCost: 25})
	require.NoError(t, err)

	got, err := r.ListByCity(ctx, city.ID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
}
