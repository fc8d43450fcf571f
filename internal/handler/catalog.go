package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/avelez/globetrotter/backend/internal/domain"
)

// CreateCityRequest is the JSON body for POST /cities.
type CreateCityRequest struct {
	Name            string `json:"name"`
	Country         string `json:"country"`
	CostIndex       int    `json:"cost_index"`
	PopularityScore int    `json:"popularity_score"`
}

// CityResponse is the JSON representation of one catalog city.
type CityResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Country         string    `json:"country"`
	CostIndex       int       `json:"cost_index"`
	PopularityScore int       `json:"popularity_score"`
}

// CreateActivityRequest is the JSON body for POST /activities.
type CreateActivityRequest struct {
	CityID        uuid.UUID `json:"city_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	AvgCost       int       `json:"avg_cost"`
	DurationHours int       `json:"duration_hours"`
}

// ActivityResponse is the JSON representation of one catalog activity.
type ActivityResponse struct {
	ID            uuid.UUID `json:"id"`
	CityID        uuid.UUID `json:"city_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	AvgCost       int       `json:"avg_cost"`
	DurationHours int       `json:"duration_hours"`
}

// CreateCity handles POST /cities.
func (s *Server) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req CreateCityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	created, err := s.catalog.CreateCity(r.Context(), domain.City{
		Name:            req.Name,
		Country:         req.Country,
		CostIndex:       req.CostIndex,
		PopularityScore: req.PopularityScore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cityToResponse(created))
}

// ListCities handles GET /cities, ordered by popularity.
func (s *Server) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.catalog.ListCities(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]CityResponse, len(cities))
	for i, c := range cities {
		out[i] = cityToResponse(c)
	}
	respondJSON(w, http.StatusOK, out)
}

// CreateActivity handles POST /activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req CreateActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	created, err := s.catalog.CreateActivity(r.Context(), domain.Activity{
		CityID:        req.CityID,
		Name:          req.Name,
		Category:      req.Category,
		AvgCost:       req.AvgCost,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, activityToResponse(created))
}

// ListActivities handles GET /activities.
// Supports an optional ?city_id= filter.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	var cityID *uuid.UUID
	if raw := r.URL.Query().Get("city_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondRequestError(w, "city_id must be a valid UUID")
			return
		}
		cityID = &id
	}

	activities, err := s.catalog.ListActivities(r.Context(), cityID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		out[i] = activityToResponse(a)
	}
	respondJSON(w, http.StatusOK, out)
}

func cityToResponse(c domain.City) CityResponse {
	return CityResponse{
		ID:              c.ID,
		Name:            c.Name,
		Country:         c.Country,
		CostIndex:       c.CostIndex,
		PopularityScore: c.PopularityScore,
	}
}

func activityToResponse(a domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:            a.ID,
		CityID:        a.CityID,
		Name:          a.Name,
		Category:      a.Category,
		AvgCost:       a.AvgCost,
		DurationHours: a.DurationHours,
	}
}
