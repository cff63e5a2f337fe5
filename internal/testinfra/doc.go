// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to run the relational stores the
// importer and exporter support but cannot embed (Postgres today). Every file
// carries the integration build tag, so unit test runs never touch Docker.
//
// # Postgres Container
//
//	func TestPostgresRoundTrip(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    db, err := database.New(&config.DatabaseConfig{Driver: "postgres", DSN: pg.DSN})
//	    ...
//	}
//
// Run with:
//
//	go test -tags integration ./internal/...
package testinfra
