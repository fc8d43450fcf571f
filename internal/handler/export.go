// Package handler's export.go implements GET /trips/{tripID}/export.
// Returns a flat day-per-row table of the trip's itinerary.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/avelez/globetrotter/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV
// export.
var csvHeaders = []string{
	"trip_id", "trip_name", "date", "city",
	"stay", "meals", "transport", "activities", "activities_cost", "day_total",
}

// ExportTrip handles GET /trips/{tripID}/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	rows, err := s.export.Export(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// writeCSV encodes the rows as CSV. Activities within a row are
// pipe-separated ("|") to keep each day on a single CSV line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(rowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// rowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func rowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripName,
		r.Date,
		r.City,
		strconv.Itoa(r.Stay),
		strconv.Itoa(r.Meals),
		strconv.Itoa(r.Transport),
		strings.Join(r.Activities, "|"),
		strconv.Itoa(r.ActivitiesCost),
		strconv.Itoa(r.DayTotal),
	}
}
