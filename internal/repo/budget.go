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

// BudgetRepo defines the persistence operations for trip budgets.
// A trip has at most one budget row; Upsert creates or overwrites it.
type BudgetRepo interface {
	// Upsert inserts the budget for a trip, or overwrites the amount if a
	// row already exists.
	Upsert(ctx context.Context, b domain.Budget) (domain.Budget, error)

	// GetByTrip returns the budget for a trip.
	// Returns domain.ErrNotFound if the trip has no declared budget.
	GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.Budget, error)
}

// pgBudgetRepo is the Postgres implementation of BudgetRepo.
type pgBudgetRepo struct {
	db db
}

// NewBudgetRepo constructs a BudgetRepo backed by the provided db connection.
func NewBudgetRepo(db db) BudgetRepo {
	return &pgBudgetRepo{db: db}
}

// Upsert creates or overwrites the trip's budget row.
// ON CONFLICT keys on trip_id, the table's primary key.
func (r *pgBudgetRepo) Upsert(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	const q = `
		INSERT INTO budgets (trip_id, estimated_budget)
		VALUES (@trip_id, @estimated_budget)
		ON CONFLICT (trip_id) DO UPDATE
			SET estimated_budget = EXCLUDED.estimated_budget,
			    updated_at = now()
		RETURNING trip_id, estimated_budget, updated_at`

	args := pgx.NamedArgs{
		"trip_id":          b.TripID,
		"estimated_budget": b.EstimatedBudget,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBudget(row)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Upsert: %w", mapConstraintError(err))
	}
	return result, nil
}

func (r *pgBudgetRepo) GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.Budget, error) {
	const q = `
		SELECT trip_id, estimated_budget, updated_at
		FROM budgets
		WHERE trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	result, err := scanBudget(row)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.GetByTrip: %w", err)
	}
	return result, nil
}

// scanBudget maps a single database row into a domain.Budget.
func scanBudget(s scanner) (domain.Budget, error) {
	var (
		b      domain.Budget
		tripID pgtype.UUID
	)
	err := s.Scan(&tripID, &b.EstimatedBudget, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Budget{}, domain.ErrNotFound
		}
		return domain.Budget{}, err
	}
	b.TripID = uuid.UUID(tripID.Bytes)
	return b, nil
}
