// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/coffeecast/internal/chart"
	"github.com/tomtom215/coffeecast/internal/forecast"
	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/metrics"
	"github.com/tomtom215/coffeecast/internal/production"
)

// ForecastResponse is the forecast of one country.
type ForecastResponse struct {
	CountryID        int64           `json:"country_id"`
	CountryName      string          `json:"country_name"`
	LastObservedYear int             `json:"last_observed_year"`
	Horizon          int             `json:"horizon"`
	ModelVersion     int             `json:"model_version"`
	ClampedSteps     int             `json:"clamped_steps"`
	Points           forecast.Series `json:"points"`
}

// forecastHistory runs the iterative forecaster and records its metrics.
func (h *Handler) forecastHistory(history production.CountryHistory, horizon int) (forecast.Series, error) {
	start := time.Now()
	series, err := forecast.ForecastHistory(history, h.model, horizon)
	metrics.RecordForecast(time.Since(start), series.ClampedSteps(), err)
	return series, err
}

func (h *Handler) forecastResponse(history production.CountryHistory, horizon int, series forecast.Series) ForecastResponse {
	return ForecastResponse{
		CountryID:        history.CountryID,
		CountryName:      history.CountryName,
		LastObservedYear: history.LastYear(),
		Horizon:          horizon,
		ModelVersion:     h.model.Metadata.Version,
		ClampedSteps:     series.ClampedSteps(),
		Points:           series,
	}
}

// writeForecastError maps forecaster errors onto the envelope.
func writeForecastError(rw *ResponseWriter, err error) {
	var emptyErr *forecast.EmptyHistoryError
	switch {
	case errors.As(err, &emptyErr):
		rw.Error(http.StatusUnprocessableEntity, ErrCodeEmptyHistory,
			fmt.Sprintf("country %d has no production history to forecast from", emptyErr.CountryID))
	case errors.Is(err, forecast.ErrInvalidHorizon):
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
	default:
		rw.InternalError("Forecast failed", err)
	}
}

// CountryForecast forecasts one country for ?horizon= years.
func (h *Handler) CountryForecast(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.requireDataset(rw) || !h.requireModel(rw) {
		return
	}
	horizon, verr := h.parseHorizon(r)
	if verr != nil {
		rw.ValidationError(verr)
		return
	}
	history, ok := h.countryHistory(rw, r)
	if !ok {
		return
	}

	series, err := h.forecastHistory(history, horizon)
	if err != nil {
		writeForecastError(rw, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Int64("country_id", history.CountryID).
		Int("horizon", horizon).
		Int("clamped", series.ClampedSteps()).
		Msg("Forecast served")

	rw.Success(h.forecastResponse(history, horizon, series))
}

// AllForecasts forecasts every country with history, ordered by name.
func (h *Handler) AllForecasts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.requireDataset(rw) || !h.requireModel(rw) {
		return
	}
	horizon, verr := h.parseHorizon(r)
	if verr != nil {
		rw.ValidationError(verr)
		return
	}

	start := time.Now()
	results, err := forecast.ForecastAll(r.Context(), h.dataset.Histories(), h.model, horizon, h.cfg.Forecast.Workers)
	clamped := 0
	for _, series := range results {
		clamped += series.ClampedSteps()
	}
	metrics.RecordForecast(time.Since(start), clamped, err)
	if err != nil {
		writeForecastError(rw, err)
		return
	}

	out := make([]ForecastResponse, 0, len(results))
	for _, c := range h.dataset.Countries() {
		series, ok := results[c.ID]
		if !ok {
			continue
		}
		history, _ := h.dataset.History(c.ID)
		out = append(out, h.forecastResponse(history, horizon, series))
	}
	rw.SuccessWithCount(out, len(out))
}

// CountryChart renders history and, when a model is loaded, the forecast
// as a PNG.
func (h *Handler) CountryChart(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.requireDataset(rw) {
		return
	}
	horizon, verr := h.parseHorizon(r)
	if verr != nil {
		rw.ValidationError(verr)
		return
	}
	history, ok := h.countryHistory(rw, r)
	if !ok {
		return
	}

	key := h.chartKey(history.CountryID, horizon)
	if png, hit := h.charts.Get(key); hit {
		writePNG(w, r, png, "HIT")
		return
	}

	var series forecast.Series
	if h.model != nil && history.Len() > 0 {
		var err error
		if series, err = h.forecastHistory(history, horizon); err != nil {
			writeForecastError(rw, err)
			return
		}
	}

	title := history.CountryName
	if title == "" {
		title = "Country " + strconv.FormatInt(history.CountryID, 10)
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, title, history.Records, series, chart.DefaultOptions()); err != nil {
		if errors.Is(err, chart.ErrNothingToPlot) {
			rw.Error(http.StatusUnprocessableEntity, ErrCodeEmptyHistory,
				fmt.Sprintf("country %d has no production history to plot", history.CountryID))
			return
		}
		rw.InternalError("Chart rendering failed", err)
		return
	}

	png := buf.Bytes()
	h.charts.Add(key, png)
	writePNG(w, r, png, "MISS")
}

// chartKey identifies a rendered chart. Version 0 marks a history-only
// chart drawn without a model.
func (h *Handler) chartKey(countryID int64, horizon int) string {
	version := 0
	if h.model != nil {
		version = h.model.Metadata.Version
	}
	return fmt.Sprintf("%d:%d:%d", countryID, horizon, version)
}

func writePNG(w http.ResponseWriter, r *http.Request, png []byte, cacheStatus string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("X-Chart-Cache", cacheStatus)
	if _, err := w.Write(png); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Chart write aborted")
	}
}
