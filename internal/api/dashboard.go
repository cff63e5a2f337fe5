// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tomtom215/coffeecast/internal/export"
	"github.com/tomtom215/coffeecast/internal/forecast"
	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/model/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseDashboard() (*template.Template, error) {
	return template.New("dashboard.html").Funcs(template.FuncMap{
		"tonnes": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		"metric": func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) },
	}).ParseFS(templateFS, "templates/dashboard.html")
}

// dashboardData is the template model of the dashboard page.
type dashboardData struct {
	Warnings   []string
	Error      string
	Countries  []export.CountrySummary
	Selected   *export.CountrySummary
	History    []HistoryPoint
	Forecast   forecast.Series
	Horizon    int
	MaxHorizon int
	ChartURL   string
	Model      *storage.ModelMetadata
}

// Dashboard renders the HTML page for ?country=, given as an id or a
// country name (the first country by name when absent). Failures are shown
// on the page, never as a bare error.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{
		Warnings:   h.warnings(),
		Horizon:    h.cfg.Forecast.DefaultHorizon,
		MaxHorizon: h.cfg.Forecast.MaxHorizon,
	}
	if h.model != nil {
		data.Model = &h.model.Metadata
	}

	status := http.StatusOK
	if horizon, verr := h.parseHorizon(r); verr != nil {
		data.Error = verr.Error()
		status = http.StatusBadRequest
	} else {
		data.Horizon = horizon
	}

	if h.dataset != nil && status == http.StatusOK {
		data.Countries = h.dataset.Countries()
		status = h.fillSelection(r, &data)
	}

	var buf bytes.Buffer
	if err := h.dashboard.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Dashboard rendering failed")
		http.Error(w, "dashboard rendering failed, see server log", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// fillSelection resolves the selected country and its tables, returning
// the page status.
func (h *Handler) fillSelection(r *http.Request, data *dashboardData) int {
	if len(data.Countries) == 0 {
		return http.StatusOK
	}

	selected := data.Countries[0]
	if raw := r.URL.Query().Get("country"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			if id, err = h.dataset.CountryByName(raw); err != nil {
				data.Error = fmt.Sprintf("Country %q not found.", raw)
				return http.StatusNotFound
			}
		}
		found := false
		for _, c := range data.Countries {
			if c.ID == id {
				selected, found = c, true
				break
			}
		}
		if !found {
			data.Error = fmt.Sprintf("Country %d not found.", id)
			return http.StatusNotFound
		}
	}
	data.Selected = &selected

	history, err := h.dataset.History(selected.ID)
	if err != nil {
		data.Error = err.Error()
		return http.StatusNotFound
	}
	data.History = historyPoints(history)

	q := url.Values{"horizon": {strconv.Itoa(data.Horizon)}}
	data.ChartURL = fmt.Sprintf("/api/v1/countries/%d/chart.png?%s", selected.ID, q.Encode())

	if h.model == nil || history.Len() == 0 {
		return http.StatusOK
	}
	series, err := h.forecastHistory(history, data.Horizon)
	if err != nil {
		data.Error = "Forecast failed: " + err.Error()
		return http.StatusOK
	}
	data.Forecast = series
	return http.StatusOK
}
