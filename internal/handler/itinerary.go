package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/avelez/globetrotter/backend/internal/domain"
)

// DayActivityResponse is one scheduled activity as rendered on a day.
type DayActivityResponse struct {
	ScheduledActivityID uuid.UUID `json:"scheduled_activity_id"`
	ActivityID          uuid.UUID `json:"activity_id"`
	Name                string    `json:"name"`
	Category            string    `json:"category"`
	Cost                int       `json:"cost"`
}

// DayRecordResponse is one calendar day of the itinerary view.
type DayRecordResponse struct {
	Date       openapi_types.Date    `json:"date"`
	StopID     uuid.UUID             `json:"stop_id"`
	CityID     uuid.UUID             `json:"city_id"`
	CityName   string                `json:"city_name"`
	Stay       int                   `json:"stay"`
	Meals      int                   `json:"meals"`
	Transport  int                   `json:"transport"`
	Activities []DayActivityResponse `json:"activities"`
	Total      int                   `json:"total"`
}

// ScheduleActivityRequest is the JSON body for POST /scheduled-activities.
type ScheduleActivityRequest struct {
	StopID     uuid.UUID          `json:"stop_id"`
	ActivityID uuid.UUID          `json:"activity_id"`
	Date       openapi_types.Date `json:"date"`
}

// ScheduledActivityResponse is the JSON representation of one persisted
// scheduled activity.
type ScheduledActivityResponse struct {
	ID         uuid.UUID          `json:"id"`
	StopID     uuid.UUID          `json:"stop_id"`
	ActivityID uuid.UUID          `json:"activity_id"`
	Date       openapi_types.Date `json:"date"`
}

// ScheduleActivityResponse pairs the persisted row with the updated day.
type ScheduleActivityResponse struct {
	Scheduled ScheduledActivityResponse `json:"scheduled"`
	Day       DayRecordResponse         `json:"day"`
}

// BudgetResponse is the JSON body for GET /trips/{tripID}/budget.
type BudgetResponse struct {
	Breakdown       domain.BudgetBreakdown `json:"breakdown"`
	EstimatedBudget int                    `json:"estimated_budget"`
	Remaining       int                    `json:"remaining"`
}

// SetBudgetRequest is the JSON body for PUT /trips/{tripID}/budget.
type SetBudgetRequest struct {
	EstimatedBudget int `json:"estimated_budget"`
}

// GetItinerary handles GET /trips/{tripID}/itinerary.
// Returns one record per calendar day, date ascending. An uncomposed trip
// yields an empty array.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	days, err := s.itinerary.Days(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]DayRecordResponse, len(days))
	for i, d := range days {
		out[i] = dayToResponse(d)
	}
	respondJSON(w, http.StatusOK, out)
}

// ScheduleActivity handles POST /scheduled-activities.
func (s *Server) ScheduleActivity(w http.ResponseWriter, r *http.Request) {
	var req ScheduleActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	sa, day, err := s.itinerary.Schedule(r.Context(), req.StopID, req.ActivityID, req.Date.Time)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ScheduleActivityResponse{
		Scheduled: ScheduledActivityResponse{
			ID:         sa.ID,
			StopID:     sa.StopID,
			ActivityID: sa.ActivityID,
			Date:       openapi_types.Date{Time: sa.Date},
		},
		Day: dayToResponse(day),
	})
}

// UnscheduleActivity handles DELETE /scheduled-activities/{id}.
func (s *Server) UnscheduleActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.itinerary.Unschedule(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBudget handles GET /trips/{tripID}/budget.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	report, err := s.itinerary.Budget(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, BudgetResponse{
		Breakdown:       report.Breakdown,
		EstimatedBudget: report.EstimatedBudget,
		Remaining:       report.Remaining,
	})
}

// PutBudget handles PUT /trips/{tripID}/budget.
// Setting the budget again overwrites the previous amount.
func (s *Server) PutBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req SetBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondRequestError(w, err.Error())
		return
	}

	b, err := s.itinerary.SetBudget(r.Context(), id, req.EstimatedBudget)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"estimated_budget": b.EstimatedBudget})
}

func dayToResponse(d domain.DayRecord) DayRecordResponse {
	activities := make([]DayActivityResponse, len(d.Activities))
	for i, a := range d.Activities {
		activities[i] = DayActivityResponse{
			ScheduledActivityID: a.ScheduledActivityID,
			ActivityID:          a.ActivityID,
			Name:                a.Name,
			Category:            a.Category,
			Cost:                a.Cost,
		}
	}
	return DayRecordResponse{
		Date:       openapi_types.Date{Time: d.Date},
		StopID:     d.StopID,
		CityID:     d.CityID,
		CityName:   d.CityName,
		Stay:       d.Stay,
		Meals:      d.Meals,
		Transport:  d.Transport,
		Activities: activities,
		Total:      d.Total,
	}
}
