// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

//go:build integration

package database

import (
	"context"
	"testing"

	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/testinfra"
)

func TestPostgres_RoundTrip(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	ctx := context.Background()

	pg, err := testinfra.NewPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, pg)

	db, err := New(&config.DatabaseConfig{Driver: "postgres", DSN: pg.DSN})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = db.Close() }()

	seedProduction(t, db)

	wide, err := db.LoadWideTable(ctx, "production")
	if err != nil {
		t.Fatalf("LoadWideTable: %v", err)
	}
	if len(wide.Rows) != 2 || len(wide.Columns) != 6 {
		t.Errorf("unexpected table shape: %d rows, columns %v", len(wide.Rows), wide.Columns)
	}

	countries, err := db.LoadCountries(ctx, "countries")
	if err != nil {
		t.Fatalf("LoadCountries: %v", err)
	}
	if countries[20] != "Viet Nam" {
		t.Errorf("unexpected countries %v", countries)
	}
}
