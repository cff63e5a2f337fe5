// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

/*
Package api serves the Coffeecast dashboard and JSON API over chi.

Routes:

	GET /                                         HTML dashboard (?country=ID&horizon=N)
	GET /api/v1/health/live                       liveness
	GET /api/v1/health/ready                      dataset and model availability
	GET /api/v1/countries                         country selector entries
	GET /api/v1/countries/{id}/history            observed production
	GET /api/v1/countries/{id}/forecast?horizon=N iterative forecast
	GET /api/v1/countries/{id}/chart.png          history and forecast chart
	GET /api/v1/forecasts?horizon=N               every country
	GET /api/v1/model                             artifact metadata and holdout metrics
	GET /metrics                                  Prometheus

The dataset and model handle are loaded once by the caller and passed in
through Dependencies. Either may be nil: the dashboard then shows a warning
banner, readiness reports 503 and model-backed endpoints answer
503 SERVICE_UNAVAILABLE. Nothing in this package mutates them, so handlers
share them across requests without locking.

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}
*/
package api
