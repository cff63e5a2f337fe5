// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

/*
Package middleware provides the HTTP middleware shared by the API router.

Key Components:

  - RequestID: request and correlation IDs in the context and X-Request-ID header
  - AccessLog: one structured zerolog line per request
  - PrometheusMetrics: request count, duration and in-flight gauge, labelled
    by chi route pattern so path parameters do not explode cardinality

All three use the func(http.Handler) http.Handler shape and are installed
with chi's r.Use:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.With(middleware.PrometheusMetrics).Get("/api/v1/countries", h.Countries)
*/
package middleware
