// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/coffeecast/internal/cache"
	"github.com/tomtom215/coffeecast/internal/model/storage"
)

// ReadinessResponse reports what the server loaded at startup.
type ReadinessResponse struct {
	Ready         bool        `json:"ready"`
	DatasetLoaded bool        `json:"dataset_loaded"`
	ModelLoaded   bool        `json:"model_loaded"`
	Countries     int         `json:"countries"`
	ModelVersion  int         `json:"model_version,omitempty"`
	DatasetError  string      `json:"dataset_error,omitempty"`
	ModelError    string      `json:"model_error,omitempty"`
	ChartCache    cache.Stats `json:"chart_cache"`
	UptimeSeconds float64     `json:"uptime_seconds"`
}

// HealthLive always answers 200 while the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 200 only when both the dataset and the model are
// loaded, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{
		DatasetLoaded: h.dataset != nil,
		ModelLoaded:   h.model != nil,
		ChartCache:    h.charts.Stats(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	resp.Ready = resp.DatasetLoaded && resp.ModelLoaded
	if h.dataset != nil {
		resp.Countries = len(h.dataset.Countries())
	} else if h.datasetErr != nil {
		resp.DatasetError = h.datasetErr.Error()
	}
	if h.model != nil {
		resp.ModelVersion = h.model.Metadata.Version
	} else if h.modelErr != nil {
		resp.ModelError = h.modelErr.Error()
	}

	status := http.StatusOK
	if !resp.Ready {
		status = http.StatusServiceUnavailable
	}
	NewResponseWriter(w, r).JSON(status, resp.Ready, resp)
}

// ModelResponse describes the loaded artifact.
type ModelResponse struct {
	storage.ModelMetadata
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
}

// ModelInfo returns the artifact metadata, holdout metrics and fitted
// coefficients by feature name.
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.requireModel(rw) {
		return
	}

	m := h.model.Model
	coefficients := make(map[string]float64, len(m.Coefficients))
	for i, c := range m.Coefficients {
		name := ""
		if i < len(m.FeatureNames) {
			name = m.FeatureNames[i]
		}
		if name == "" {
			name = "x" + strconv.Itoa(i)
		}
		coefficients[name] = c
	}

	rw.Success(ModelResponse{
		ModelMetadata: h.model.Metadata,
		Intercept:     m.Intercept,
		Coefficients:  coefficients,
	})
}
