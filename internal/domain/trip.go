// Package domain contains the core data types for the GlobeTrotter API.
// This package has no dependencies beyond uuid and is imported by every
// other internal package (plan, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single multi-city trip owned by one user.
// A trip is the top-level aggregate; stops belong to a trip.
// StartDate and EndDate are inclusive calendar dates stored as UTC midnight.
// StartDate must not be after EndDate (enforced at the service layer and by
// a database check constraint).
type Trip struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
