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

// StopRepo defines the persistence operations for trip stops.
// Stops only ever change as a whole batch: Replace swaps the entire stop
// sequence for a trip in one transaction, which is how composition and
// recomposition both work. Individual stops are never updated in place.
type StopRepo interface {
	// Replace atomically deletes a trip's existing stops and inserts the
	// given batch in order, returning the persisted records. Scheduled
	// activities attached to the old stops cascade away with them.
	Replace(ctx context.Context, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error)

	// GetByID retrieves a single stop by its UUID primary key.
	// Returns domain.ErrNotFound if no stop with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error)

	// ListByTrip returns all stops for a trip ordered by stop_order ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

// Replace swaps a trip's stop batch inside a transaction so a failed insert
// can never leave the trip half-composed. The check constraint on
// (start_date <= end_date) also rejects degenerate stops server-side.
func (r *pgStopRepo) Replace(ctx context.Context, tripID uuid.UUID, stops []domain.Stop) ([]domain.Stop, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.Replace: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	const del = `DELETE FROM trip_stops WHERE trip_id = @trip_id`
	if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.Replace: delete: %w", err)
	}

	const ins = `
		INSERT INTO trip_stops (trip_id, city_id, start_date, end_date, stop_order)
		VALUES (@trip_id, @city_id, @start_date, @end_date, @stop_order)
		RETURNING id, trip_id, city_id, start_date, end_date, stop_order, created_at`

	persisted := make([]domain.Stop, 0, len(stops))
	for _, s := range stops {
		args := pgx.NamedArgs{
			"trip_id":    tripID,
			"city_id":    s.CityID,
			"start_date": s.StartDate,
			"end_date":   s.EndDate,
			"stop_order": s.Order,
		}
		row := tx.QueryRow(ctx, ins, args)
		stored, err := scanStop(row)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.Replace: insert: %w", mapConstraintError(err))
		}
		persisted = append(persisted, stored)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.Replace: commit: %w", err)
	}
	return persisted, nil
}

func (r *pgStopRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error) {
	const q = `
		SELECT id, trip_id, city_id, start_date, end_date, stop_order, created_at
		FROM trip_stops
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT id, trip_id, city_id, start_date, end_date, stop_order, created_at
		FROM trip_stops
		WHERE trip_id = @trip_id
		ORDER BY stop_order`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	stops := []domain.Stop{}
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListByTrip: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrip: rows: %w", err)
	}
	return stops, nil
}

// scanStop maps a single database row into a domain.Stop.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		st     domain.Stop
		id     pgtype.UUID
		tripID pgtype.UUID
		cityID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
	)
	err := s.Scan(&id, &tripID, &cityID, &start, &end, &st.Order, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}
	st.ID = uuid.UUID(id.Bytes)
	st.TripID = uuid.UUID(tripID.Bytes)
	st.CityID = uuid.UUID(cityID.Bytes)
	st.StartDate = start.Time
	st.EndDate = end.Time
	return st, nil
}
