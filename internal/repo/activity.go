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

// ActivityRepo defines the persistence operations for the activity catalog.
type ActivityRepo interface {
	// Create inserts a new catalog activity and returns the persisted record.
	Create(ctx context.Context, act domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity by its UUID primary key.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// List returns the whole catalog ordered by name.
	List(ctx context.Context) ([]domain.Activity, error)

	// ListByCity returns the catalog entries for one city, ordered by name.
	ListByCity(ctx context.Context, cityID uuid.UUID) ([]domain.Activity, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

func (r *pgActivityRepo) Create(ctx context.Context, act domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (city_id, name, category, avg_cost, duration_hours)
		VALUES (@city_id, @name, @category, @avg_cost, @duration_hours)
		RETURNING id, city_id, name, category, avg_cost, duration_hours, created_at`

	args := pgx.NamedArgs{
		"city_id":        act.CityID,
		"name":           act.Name,
		"category":       act.Category,
		"avg_cost":       act.AvgCost,
		"duration_hours": act.DurationHours,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", mapConstraintError(err))
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `
		SELECT id, city_id, name, category, avg_cost, duration_hours, created_at
		FROM activities
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) List(ctx context.Context) ([]domain.Activity, error) {
	const q = `
		SELECT id, city_id, name, category, avg_cost, duration_hours, created_at
		FROM activities
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.List: %w", err)
	}
	defer rows.Close()

	return collectActivities(rows, "repo.ActivityRepo.List")
}

func (r *pgActivityRepo) ListByCity(ctx context.Context, cityID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT id, city_id, name, category, avg_cost, duration_hours, created_at
		FROM activities
		WHERE city_id = @city_id
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"city_id": cityID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByCity: %w", err)
	}
	defer rows.Close()

	return collectActivities(rows, "repo.ActivityRepo.ListByCity")
}

// collectActivities drains rows into a slice, wrapping errors with op.
func collectActivities(rows pgx.Rows, op string) ([]domain.Activity, error) {
	acts := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return acts, nil
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		cityID pgtype.UUID
	)
	err := s.Scan(&id, &cityID, &a.Name, &a.Category, &a.AvgCost, &a.DurationHours, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	a.CityID = uuid.UUID(cityID.Bytes)
	return a, nil
}
