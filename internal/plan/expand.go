package plan

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/avelez/globetrotter/backend/internal/domain"
)

// Expand produces one day record per calendar day across all stops,
// ordered by date ascending. City names are resolved through the catalog;
// stay and meal baselines come from the cost model; the transport
// surcharge lands on the first day of the first stop only.
//
// Deterministic: identical inputs always yield identical output. Stops are
// sorted by order index before expansion, so input slice order does not
// matter. Activity lists start empty; Merge fills them in.
//
// Returns domain.ErrUnknownCity when a stop references a city missing from
// the catalog.
func Expand(stops []domain.Stop, cities []domain.City, cm domain.CostModel) ([]domain.DayRecord, error) {
	byID := make(map[uuid.UUID]domain.City, len(cities))
	for _, c := range cities {
		byID[c.ID] = c
	}

	ordered := make([]domain.Stop, len(stops))
	copy(ordered, stops)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	var days []domain.DayRecord
	for _, s := range ordered {
		city, ok := byID[s.CityID]
		if !ok {
			return nil, fmt.Errorf("plan.Expand: %w: %s", domain.ErrUnknownCity, s.CityID)
		}
		for d := DateOf(s.StartDate); !d.After(DateOf(s.EndDate)); d = addDays(d, 1) {
			transport := 0
			if len(days) == 0 {
				transport = cm.TransportSurcharge
			}
			days = append(days, domain.DayRecord{
				Date:       d,
				StopID:     s.ID,
				CityID:     s.CityID,
				CityName:   city.Name,
				Stay:       cm.StayPerDay,
				Meals:      cm.MealsPerDay,
				Transport:  transport,
				Activities: []domain.DayActivity{},
				Total:      cm.StayPerDay + cm.MealsPerDay + transport,
			})
		}
	}
	return days, nil
}

// Merge folds scheduled activities into the day records produced by Expand,
// appending one entry per scheduled activity to its date's record and
// adding the activity cost to that day's total. Days is mutated in place.
//
// Scheduled rows are processed in (date, created-at, id) order so the
// merge is deterministic regardless of how the store returned them.
//
// Returns domain.ErrUnknownActivity for a dangling activity reference and
// domain.ErrDateOutOfRange when a scheduled date has no day record; both
// indicate corrupted store state rather than bad user input.
func Merge(days []domain.DayRecord, scheduled []domain.ScheduledActivity, catalog []domain.Activity) error {
	byActivity := make(map[uuid.UUID]domain.Activity, len(catalog))
	for _, a := range catalog {
		byActivity[a.ID] = a
	}
	byDate := make(map[int64]int, len(days))
	for i, d := range days {
		byDate[DateOf(d.Date).Unix()] = i
	}

	ordered := make([]domain.ScheduledActivity, len(scheduled))
	copy(ordered, scheduled)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	for _, sa := range ordered {
		act, ok := byActivity[sa.ActivityID]
		if !ok {
			return fmt.Errorf("plan.Merge: %w: %s", domain.ErrUnknownActivity, sa.ActivityID)
		}
		idx, ok := byDate[DateOf(sa.Date).Unix()]
		if !ok {
			return fmt.Errorf("plan.Merge: %w: %s", domain.ErrDateOutOfRange, DateOf(sa.Date).Format("2006-01-02"))
		}
		days[idx].Activities = append(days[idx].Activities, domain.DayActivity{
			ScheduledActivityID: sa.ID,
			ActivityID:          act.ID,
			Name:                act.Name,
			Category:            act.Category,
			Cost:                act.AvgCost,
		})
		days[idx].Total += act.AvgCost
	}
	return nil
}
