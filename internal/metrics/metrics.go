// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package metrics defines the Prometheus collectors Coffeecast exports on
// /metrics: relational store queries, spreadsheet imports, training runs
// with their holdout scores, forecast requests and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Relational store

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coffeecast_db_query_duration_seconds",
			Help:    "Duration of relational store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffeecast_db_query_errors_total",
			Help: "Total number of relational store query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Spreadsheet import

	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffeecast_import_rows_total",
			Help: "Rows read from workbook sheets, by sheet and outcome",
		},
		[]string{"sheet", "outcome"}, // "inserted", "skipped"
	)

	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coffeecast_import_duration_seconds",
			Help:    "Duration of full workbook imports",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		},
	)

	// Long-format export

	YearLabelAnomalies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coffeecast_year_label_anomalies_total",
			Help: "Production-table columns whose label did not parse as a year",
		},
	)

	ExportRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coffeecast_export_records",
			Help: "Long-format records written by the last export",
		},
	)

	// Training

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffeecast_training_runs_total",
			Help: "Model training runs by result",
		},
		[]string{"result"}, // "success", "error"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coffeecast_training_duration_seconds",
			Help:    "Duration of model training runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
	)

	ModelHoldoutScore = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coffeecast_model_holdout_score",
			Help: "Holdout evaluation of the last trained model",
		},
		[]string{"metric"}, // "mae", "rmse", "r2"
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coffeecast_model_version",
			Help: "Version of the model artifact in use",
		},
	)

	// Forecasting

	ForecastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffeecast_forecasts_total",
			Help: "Iterative forecasts computed, by result",
		},
		[]string{"result"},
	)

	ForecastClamped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coffeecast_forecast_clamped_steps_total",
			Help: "Forecast steps whose negative prediction was replaced by the rolling mean",
		},
	)

	ForecastDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coffeecast_forecast_duration_seconds",
			Help:    "Duration of single-country forecasts",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
	)

	// HTTP

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffeecast_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coffeecast_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coffeecast_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)
)

// RecordDBQuery records a relational store query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordImportRows adds inserted and skipped row counts for one sheet.
func RecordImportRows(sheet string, inserted, skipped int) {
	ImportRowsTotal.WithLabelValues(sheet, "inserted").Add(float64(inserted))
	ImportRowsTotal.WithLabelValues(sheet, "skipped").Add(float64(skipped))
}

// RecordTraining records one training run and, on success, its holdout
// scores and artifact version.
func RecordTraining(duration time.Duration, version int, mae, rmse, r2 float64, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		TrainingRuns.WithLabelValues("error").Inc()
		return
	}
	TrainingRuns.WithLabelValues("success").Inc()
	ModelHoldoutScore.WithLabelValues("mae").Set(mae)
	ModelHoldoutScore.WithLabelValues("rmse").Set(rmse)
	ModelHoldoutScore.WithLabelValues("r2").Set(r2)
	ModelVersion.Set(float64(version))
}

// RecordForecast records one single-country forecast.
func RecordForecast(duration time.Duration, clampedSteps int, err error) {
	ForecastDuration.Observe(duration.Seconds())
	if err != nil {
		ForecastsTotal.WithLabelValues("error").Inc()
		return
	}
	ForecastsTotal.WithLabelValues("success").Inc()
	ForecastClamped.Add(float64(clampedSteps))
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
