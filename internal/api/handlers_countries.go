// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package api

import (
	"net/http"

	"github.com/tomtom215/coffeecast/internal/production"
)

// HistoryPoint is one observed year.
type HistoryPoint struct {
	Year       int     `json:"year"`
	Production float64 `json:"production"`
}

// HistoryResponse is the observed series of one country.
type HistoryResponse struct {
	CountryID   int64          `json:"country_id"`
	CountryName string         `json:"country_name"`
	FirstYear   int            `json:"first_year,omitempty"`
	LastYear    int            `json:"last_year,omitempty"`
	Points      []HistoryPoint `json:"points"`
}

func historyPoints(h production.CountryHistory) []HistoryPoint {
	points := make([]HistoryPoint, len(h.Records))
	for i, rec := range h.Records {
		points[i] = HistoryPoint{Year: rec.Year, Production: rec.Production}
	}
	return points
}

// Countries lists every country with its observed year range.
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.requireDataset(rw) {
		return
	}
	countries := h.dataset.Countries()
	rw.SuccessWithCount(countries, len(countries))
}

// CountryHistory returns the observed production of one country.
func (h *Handler) CountryHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.requireDataset(rw) {
		return
	}
	history, ok := h.countryHistory(rw, r)
	if !ok {
		return
	}

	rw.Success(HistoryResponse{
		CountryID:   history.CountryID,
		CountryName: history.CountryName,
		FirstYear:   history.FirstYear(),
		LastYear:    history.LastYear(),
		Points:      historyPoints(history),
	})
}
