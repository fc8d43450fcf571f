package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avelez/globetrotter/backend/internal/domain"
	"github.com/avelez/globetrotter/backend/internal/repo"
)

// DaySource provides the day records an export is built from.
// *ItineraryService satisfies it.
type DaySource interface {
	Days(ctx context.Context, tripID uuid.UUID) ([]domain.DayRecord, error)
}

// ExportService assembles a flat day-per-row export of one trip's
// itinerary, suitable for CSV download or external analysis.
type ExportService struct {
	trips repo.TripRepo
	days  DaySource
}

// NewExportService constructs an ExportService backed by the trip repo and
// a day source.
func NewExportService(trips repo.TripRepo, days DaySource) *ExportService {
	return &ExportService{trips: trips, days: days}
}

// Export returns one ExportRow per calendar day of the trip, date
// ascending, with trip fields repeated on every row. A trip that has not
// been composed yields an empty (non-nil) slice.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	days, err := s.days.Days(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(days))
	for _, d := range days {
		row := domain.ExportRow{
			TripID:    trip.ID.String(),
			TripName:  trip.Name,
			Date:      d.Date.Format("2006-01-02"),
			City:      d.CityName,
			Stay:      d.Stay,
			Meals:     d.Meals,
			Transport: d.Transport,
			DayTotal:  d.Total,
		}
		for _, a := range d.Activities {
			row.Activities = append(row.Activities, fmt.Sprintf("%s (%d)", a.Name, a.Cost))
			row.ActivitiesCost += a.Cost
		}
		rows = append(rows, row)
	}
	return rows, nil
}
