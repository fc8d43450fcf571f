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

// CityRepo defines the persistence operations for the city catalog.
type CityRepo interface {
	// Create inserts a new city and returns the persisted record.
	Create(ctx context.Context, city domain.City) (domain.City, error)

	// GetByID retrieves a single city by its UUID primary key.
	// Returns domain.ErrNotFound if no city with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.City, error)

	// List returns the whole catalog ordered by popularity descending,
	// then name, so discovery listings are stable.
	List(ctx context.Context) ([]domain.City, error)
}

// pgCityRepo is the Postgres implementation of CityRepo.
type pgCityRepo struct {
	db db
}

// NewCityRepo constructs a CityRepo backed by the provided db connection.
func NewCityRepo(db db) CityRepo {
	return &pgCityRepo{db: db}
}

func (r *pgCityRepo) Create(ctx context.Context, city domain.City) (domain.City, error) {
	const q = `
		INSERT INTO cities (name, country, cost_index, popularity_score)
		VALUES (@name, @country, @cost_index, @popularity_score)
		RETURNING id, name, country, cost_index, popularity_score, created_at`

	args := pgx.NamedArgs{
		"name":             city.Name,
		"country":          city.Country,
		"cost_index":       city.CostIndex,
		"popularity_score": city.PopularityScore,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCity(row)
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.Create: %w", mapConstraintError(err))
	}
	return result, nil
}

func (r *pgCityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	const q = `
		SELECT id, name, country, cost_index, popularity_score, created_at
		FROM cities
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanCity(row)
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCityRepo) List(ctx context.Context) ([]domain.City, error) {
	const q = `
		SELECT id, name, country, cost_index, popularity_score, created_at
		FROM cities
		ORDER BY popularity_score DESC, name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CityRepo.List: %w", err)
	}
	defer rows.Close()

	cities := []domain.City{}
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CityRepo.List: scan: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CityRepo.List: rows: %w", err)
	}
	return cities, nil
}

// scanCity maps a single database row into a domain.City.
func scanCity(s scanner) (domain.City, error) {
	var (
		c  domain.City
		id pgtype.UUID
	)
	err := s.Scan(&id, &c.Name, &c.Country, &c.CostIndex, &c.PopularityScore, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.City{}, domain.ErrNotFound
		}
		return domain.City{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}
