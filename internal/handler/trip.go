package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/avelez/globetrotter/backend/internal/domain"
)

// CreateTripRequest is the JSON body for POST /trips.
type CreateTripRequest struct {
	UserID      uuid.UUID          `json:"user_id"`
	Name        string             `json:"name"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Description *string            `json:"description"`
	IsPublic    *bool              `json:"is_public"`
}

// TripResponse is the JSON representation of one trip.
type TripResponse struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id"`
	Name        string             `json:"name"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Description string             `json:"description,omitempty"`
	IsPublic    bool               `json:"is_public"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ComposeTripRequest is the JSON body for POST /trips/{tripID}/compose.
type ComposeTripRequest struct {
	CityIDs []uuid.UUID `json:"city_ids"`
}

// StopResponse is the JSON representation of one composed stop.
type StopResponse struct {
	ID        uuid.UUID          `json:"id"`
	TripID    uuid.UUID          `json:"trip_id"`
	CityID    uuid.UUID          `json:"city_id"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Order     int                `json:"order"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req CreateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	trip := domain.Trip{
		UserID:    req.UserID,
		Name:      req.Name,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.IsPublic != nil {
		trip.IsPublic = *req.IsPublic
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tripToResponse(created))
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUserTrips handles GET /users/{userID}/trips.
func (s *Server) ListUserTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	trips, err := s.trips.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tripsToResponse(trips))
}

// ListCommunityTrips handles GET /community/trips.
// Only trips marked public are listed.
func (s *Server) ListCommunityTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.ListPublic(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tripsToResponse(trips))
}

// ComposeTrip handles POST /trips/{tripID}/compose.
// The ordered city list is partitioned over the trip's dates and the
// resulting stop batch replaces any previous composition.
func (s *Server) ComposeTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req ComposeTripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	stops, err := s.trips.Compose(r.Context(), id, req.CityIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, stopsToResponse(stops))
}

// ListStops handles GET /trips/{tripID}/stops.
func (s *Server) ListStops(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	stops, err := s.trips.Stops(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stopsToResponse(stops))
}

// --- mapping helpers --------------------------------------------------------

// pathUUID parses the named chi URL parameter as a UUID, writing a 422
// response and returning ok=false when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondRequestError(w, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func tripToResponse(t domain.Trip) TripResponse {
	return TripResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Name:        t.Name,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		Description: t.Description,
		IsPublic:    t.IsPublic,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tripsToResponse(trips []domain.Trip) []TripResponse {
	out := make([]TripResponse, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	return out
}

func stopToResponse(st domain.Stop) StopResponse {
	return StopResponse{
		ID:        st.ID,
		TripID:    st.TripID,
		CityID:    st.CityID,
		StartDate: openapi_types.Date{Time: st.StartDate},
		EndDate:   openapi_types.Date{Time: st.EndDate},
		Order:     st.Order,
	}
}

func stopsToResponse(stops []domain.Stop) []StopResponse {
	out := make([]StopResponse, len(stops))
	for i, st := range stops {
		out[i] = stopToResponse(st)
	}
	return out
}
