// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package api

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/coffeecast/internal/cache"
	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/export"
	"github.com/tomtom215/coffeecast/internal/model"
	"github.com/tomtom215/coffeecast/internal/production"
	"github.com/tomtom215/coffeecast/internal/validation"
)

// Dependencies are the read-only values the handlers serve from.
type Dependencies struct {
	Config *config.Config

	// Dataset is nil when the export files could not be read at startup;
	// DatasetErr then says why.
	Dataset    *export.Dataset
	DatasetErr error

	// Model is nil when no artifact could be loaded; ModelErr says why.
	Model    *model.Artifact
	ModelErr error
}

// Handler implements every route.
type Handler struct {
	cfg        *config.Config
	dataset    *export.Dataset
	datasetErr error
	model      *model.Artifact
	modelErr   error
	dashboard  *template.Template
	charts     *cache.LRU[[]byte]
	startTime  time.Time
}

// Chart cache bounds. Entries never go stale while the process runs since
// the dataset and model are fixed; the TTL only bounds memory held by
// rarely viewed countries.
const (
	chartCacheSize = 128
	chartCacheTTL  = 30 * time.Minute
)

// NewHandler parses the embedded templates and binds the dependencies.
func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Config == nil {
		return nil, errors.New("api: config is required")
	}

	tmpl, err := parseDashboard()
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	return &Handler{
		cfg:        deps.Config,
		dataset:    deps.Dataset,
		datasetErr: deps.DatasetErr,
		model:      deps.Model,
		modelErr:   deps.ModelErr,
		dashboard:  tmpl,
		charts:     cache.NewLRU[[]byte](chartCacheSize, chartCacheTTL),
		startTime:  time.Now(),
	}, nil
}

// SweepChartCache drops expired chart images and returns how many it
// removed.
func (h *Handler) SweepChartCache() int {
	return h.charts.CleanupExpired()
}

// warnings lists what was missing at startup, for the dashboard banner.
func (h *Handler) warnings() []string {
	var out []string
	if h.dataset == nil {
		msg := "Production data is not available. Run the importer and exporter, then restart the server."
		if h.datasetErr != nil {
			msg += " (" + h.datasetErr.Error() + ")"
		}
		out = append(out, msg)
	}
	if h.model == nil {
		msg := "No trained model is available, forecasts are disabled. Run the trainer, then restart the server."
		if h.modelErr != nil {
			msg += " (" + h.modelErr.Error() + ")"
		}
		out = append(out, msg)
	}
	return out
}

// parseHorizon reads ?horizon=, falling back to the configured default.
func (h *Handler) parseHorizon(r *http.Request) (int, *validation.RequestValidationError) {
	req := validation.ForecastRequest{
		Horizon:    h.cfg.Forecast.DefaultHorizon,
		MaxHorizon: h.cfg.Forecast.MaxHorizon,
	}
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			// Non-numeric input fails the same min rule as zero.
			n = 0
		}
		req.Horizon = n
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return 0, verr
	}
	return req.Horizon, nil
}

// requireDataset writes 503 and returns false when no dataset is loaded.
func (h *Handler) requireDataset(rw *ResponseWriter) bool {
	if h.dataset == nil {
		rw.ServiceUnavailable("Production data is not loaded")
		return false
	}
	return true
}

// requireModel writes 503 and returns false when no model is loaded.
func (h *Handler) requireModel(rw *ResponseWriter) bool {
	if h.model == nil {
		rw.ServiceUnavailable("Forecast model is not loaded")
		return false
	}
	return true
}

// countryHistory resolves {id} to a history, writing 400 or 404 when it
// cannot.
func (h *Handler) countryHistory(rw *ResponseWriter, r *http.Request) (production.CountryHistory, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		rw.BadRequest(fmt.Sprintf("country id %q is not an integer", raw))
		return production.CountryHistory{}, false
	}

	history, err := h.dataset.History(id)
	if errors.Is(err, export.ErrCountryNotFound) {
		rw.NotFound(fmt.Sprintf("country %d not found", id))
		return production.CountryHistory{}, false
	}
	if err != nil {
		rw.InternalError("Failed to load country history", err)
		return production.CountryHistory{}, false
	}
	return history, true
}
