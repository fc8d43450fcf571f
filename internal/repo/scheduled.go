package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/avelez/globetrotter/backend/internal/domain"
)

// ScheduledActivityRepo defines the persistence operations for scheduled
// activities. Rows are created and deleted, never updated; the engine's
// write-through scheduler owns this lifecycle. The Create/Delete pair also
// satisfies plan.Store, so the repo plugs straight into the scheduler.
type ScheduledActivityRepo interface {
	// Create inserts a scheduled activity and returns the persisted record.
	// A dangling stop or activity reference returns domain.ErrNotFound.
	Create(ctx context.Context, sa domain.ScheduledActivity) (domain.ScheduledActivity, error)

	// GetByID retrieves a single scheduled activity by its UUID primary key.
	// Returns domain.ErrNotFound if no row with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ScheduledActivity, error)

	// Delete removes a scheduled activity by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByTrip returns every scheduled activity across all of a trip's
	// stops, joined through trip_stops, ordered by date then creation time.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ScheduledActivity, error)
}

// pgScheduledActivityRepo is the Postgres implementation of ScheduledActivityRepo.
type pgScheduledActivityRepo struct {
	db db
}

// NewScheduledActivityRepo constructs a ScheduledActivityRepo backed by the
// provided db connection.
func NewScheduledActivityRepo(db db) ScheduledActivityRepo {
	return &pgScheduledActivityRepo{db: db}
}

func (r *pgScheduledActivityRepo) Create(ctx context.Context, sa domain.ScheduledActivity) (domain.ScheduledActivity, error) {
	const q = `
		INSERT INTO stop_activities (stop_id, activity_id, scheduled_date)
		VALUES (@stop_id, @activity_id, @scheduled_date)
		RETURNING id, stop_id, activity_id, scheduled_date, created_at`

	args := pgx.NamedArgs{
		"stop_id":        sa.StopID,
		"activity_id":    sa.ActivityID,
		"scheduled_date": sa.Date,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanScheduledActivity(row)
	if err != nil {
		return domain.ScheduledActivity{}, fmt.Errorf("repo.ScheduledActivityRepo.Create: %w", mapConstraintError(err))
	}
	return result, nil
}

func (r *pgScheduledActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ScheduledActivity, error) {
	const q = `
		SELECT id, stop_id, activity_id, scheduled_date, created_at
		FROM stop_activities
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanScheduledActivity(row)
	if err != nil {
		return domain.ScheduledActivity{}, fmt.Errorf("repo.ScheduledActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgScheduledActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM stop_activities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ScheduledActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ScheduledActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgScheduledActivityRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ScheduledActivity, error) {
	const q = `
		SELECT sa.id, sa.stop_id, sa.activity_id, sa.scheduled_date, sa.created_at
		FROM stop_activities sa
		JOIN trip_stops ts ON ts.id = sa.stop_id
		WHERE ts.trip_id = @trip_id
		ORDER BY sa.scheduled_date, sa.created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ScheduledActivityRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	scheduled := []domain.ScheduledActivity{}
	for rows.Next() {
		sa, err := scanScheduledActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ScheduledActivityRepo.ListByTrip: scan: %w", err)
		}
		scheduled = append(scheduled, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ScheduledActivityRepo.ListByTrip: rows: %w", err)
	}
	return scheduled, nil
}

// scanScheduledActivity maps a single database row into a domain.ScheduledActivity.
func scanScheduledActivity(s scanner) (domain.ScheduledActivity, error) {
	var (
		sa         domain.ScheduledActivity
		id         pgtype.UUID
		stopID     pgtype.UUID
		activityID pgtype.UUID
		day        pgtype.Date
	)
	err := s.Scan(&id, &stopID, &activityID, &day, &sa.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ScheduledActivity{}, domain.ErrNotFound
		}
		return domain.ScheduledActivity{}, err
	}
	sa.ID = uuid.UUID(id.Bytes)
	sa.StopID = uuid.UUID(stopID.Bytes)
	sa.ActivityID = uuid.UUID(activityID.Bytes)
	sa.Date = day.Time
	return sa, nil
}
