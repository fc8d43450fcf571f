package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelez/globetrotter/backend/internal/domain"
)

// Store is the slice of the persistence layer the scheduler writes through
// to. repo.ScheduledActivityRepo satisfies it; tests supply fakes.
type Store interface {
	// Create persists a scheduled activity and returns it with its
	// store-generated identity.
	Create(ctx context.Context, sa domain.ScheduledActivity) (domain.ScheduledActivity, error)

	// Delete removes a scheduled activity by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Itinerary is an in-memory day-by-day view of one trip, built from the
// day records Expand and Merge produce. Schedule and Unschedule follow the
// write-through rule: the store round-trip happens first, and the local
// view is mutated only on confirmed success. A store failure therefore
// leaves the view byte-identical to its pre-call state, so the visible
// itinerary can never show an activity the store does not hold.
//
// Not safe for concurrent mutation; single-writer discipline is the
// caller's job. Two interleaved Schedule calls for the same date are not
// serialized here and can legitimately both land.
type Itinerary struct {
	days   []domain.DayRecord
	byDate map[int64]int
}

// NewItinerary wraps the given day records. The slice is held by reference
// and mutated by Schedule/Unschedule; callers wanting a stable snapshot
// should pass a copy.
func NewItinerary(days []domain.DayRecord) *Itinerary {
	byDate := make(map[int64]int, len(days))
	for i, d := range days {
		byDate[DateOf(d.Date).Unix()] = i
	}
	return &Itinerary{days: days, byDate: byDate}
}

// Days returns the current day records, date ascending.
func (it *Itinerary) Days() []domain.DayRecord {
	return it.days
}

// Day returns the record for the given date.
// The second return is false when the date is outside the trip.
func (it *Itinerary) Day(date time.Time) (domain.DayRecord, bool) {
	idx, ok := it.byDate[DateOf(date).Unix()]
	if !ok {
		return domain.DayRecord{}, false
	}
	return it.days[idx], true
}

// Schedule attaches the activity to the given date within the stop:
// it validates the date against the stop's range, persists through the
// store, and only then merges the stored row into the local day record.
//
// At most one store attempt is made; retries are the caller's business.
// Returns domain.ErrDateOutOfRange before touching the store when the date
// falls outside [stop.StartDate, stop.EndDate], and a *domain.
// PersistenceError wrapping the cause when the store rejects the write;
// in both cases the local view is unchanged.
func (it *Itinerary) Schedule(ctx context.Context, store Store, stop domain.Stop, act domain.Activity, date time.Time) (domain.ScheduledActivity, error) {
	d := DateOf(date)
	if d.Before(DateOf(stop.StartDate)) || d.After(DateOf(stop.EndDate)) {
		return domain.ScheduledActivity{}, fmt.Errorf("plan.Itinerary.Schedule: %w", domain.ErrDateOutOfRange)
	}
	idx, ok := it.byDate[d.Unix()]
	if !ok {
		return domain.ScheduledActivity{}, fmt.Errorf("plan.Itinerary.Schedule: %w", domain.ErrDateOutOfRange)
	}

	created, err := store.Create(ctx, domain.ScheduledActivity{
		StopID:     stop.ID,
		ActivityID: act.ID,
		Date:       d,
	})
	if err != nil {
		return domain.ScheduledActivity{}, &domain.PersistenceError{Op: "create scheduled activity", Err: err}
	}

	// Confirmed durable, now it may become visible.
	it.days[idx].Activities = append(it.days[idx].Activities, domain.DayActivity{
		ScheduledActivityID: created.ID,
		ActivityID:          act.ID,
		Name:                act.Name,
		Category:            act.Category,
		Cost:                act.AvgCost,
	})
	it.days[idx].Total += act.AvgCost

	return created, nil
}

// Unschedule removes a scheduled activity, mirroring Schedule's ordering:
// delete from the store first, drop from the local day record second.
// Returns domain.ErrNotFound when the ID is not present in the view and a
// *domain.PersistenceError when the store delete fails; the local view is
// unchanged in both cases.
func (it *Itinerary) Unschedule(ctx context.Context, store Store, scheduledID uuid.UUID) error {
	dayIdx, actIdx := -1, -1
	for i, day := range it.days {
		for j, a := range day.Activities {
			if a.ScheduledActivityID == scheduledID {
				dayIdx, actIdx = i, j
				break
			}
		}
		if dayIdx >= 0 {
			break
		}
	}
	if dayIdx < 0 {
		return fmt.Errorf("plan.Itinerary.Unschedule: %w", domain.ErrNotFound)
	}

	if err := store.Delete(ctx, scheduledID); err != nil {
		return &domain.PersistenceError{Op: "delete scheduled activity", Err: err}
	}

	day := &it.days[dayIdx]
	day.Total -= day.Activities[actIdx].Cost
	day.Activities = append(day.Activities[:actIdx], day.Activities[actIdx+1:]...)
	return nil
}
