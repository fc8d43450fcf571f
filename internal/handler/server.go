// Package handler implements the HTTP handlers for the GlobeTrotter API.
// Handlers are methods on Server, split into domain-specific files
// (health.go, trip.go, catalog.go, itinerary.go, export.go) but sharing
// the same struct so they can access its dependencies. Routing lives in
// Routes so main.go only mounts one http.Handler.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avelez/globetrotter/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	ListPublic(ctx context.Context) ([]domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Compose(ctx context.Context, tripID uuid.UUID, cityIDs []uuid.UUID) ([]domain.Stop, error)
	Stops(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
}

// CatalogServicer defines the city and activity catalog operations.
type CatalogServicer interface {
	CreateCity(ctx context.Context, city domain.City) (domain.City, error)
	ListCities(ctx context.Context) ([]domain.City, error)
	CreateActivity(ctx context.Context, act domain.Activity) (domain.Activity, error)
	ListActivities(ctx context.Context, cityID *uuid.UUID) ([]domain.Activity, error)
}

// ItineraryServicer defines the day-view, scheduling, and budget operations.
type ItineraryServicer interface {
	Days(ctx context.Context, tripID uuid.UUID) ([]domain.DayRecord, error)
	Schedule(ctx context.Context, stopID, activityID uuid.UUID, date time.Time) (domain.ScheduledActivity, domain.DayRecord, error)
	Unschedule(ctx context.Context, scheduledID uuid.UUID) error
	Budget(ctx context.Context, tripID uuid.UUID) (domain.BudgetReport, error)
	SetBudget(ctx context.Context, tripID uuid.UUID, amount int) (domain.Budget, error)
}

// ExportServicer defines the flat day-per-row export operation.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the handlers' dependencies. Methods are in domain-specific
// files but all operate on this struct.
type Server struct {
	trips     TripServicer
	catalog   CatalogServicer
	itinerary ItineraryServicer
	export    ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, catalog CatalogServicer, itinerary ItineraryServicer, export ExportServicer) *Server {
	return &Server{trips: trips, catalog: catalog, itinerary: itinerary, export: export}
}

// Routes returns the chi router with every API endpoint registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/compose", s.ComposeTrip)
			r.Get("/stops", s.ListStops)
			r.Get("/itinerary", s.GetItinerary)
			r.Get("/budget", s.GetBudget)
			r.Put("/budget", s.PutBudget)
			r.Get("/export", s.ExportTrip)
		})
	})

	r.Get("/users/{userID}/trips", s.ListUserTrips)
	r.Get("/community/trips", s.ListCommunityTrips)

	r.Get("/cities", s.ListCities)
	r.Post("/cities", s.CreateCity)
	r.Get("/activities", s.ListActivities)
	r.Post("/activities", s.CreateActivity)

	r.Post("/scheduled-activities", s.ScheduleActivity)
	r.Delete("/scheduled-activities/{id}", s.UnscheduleActivity)

	return r
}
