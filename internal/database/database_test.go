// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/production"
)

// embeddedDrivers are the drivers every unit test run can open without a
// server.
var embeddedDrivers = []string{"duckdb", "sqlite3"}

func setupTestDB(t *testing.T, driver string) *DB {
	t.Helper()

	db, err := New(&config.DatabaseConfig{Driver: driver, Path: ":memory:", Threads: 1})
	if err != nil {
		t.Fatalf("New(%s): %v", driver, err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("close %s: %v", driver, err)
		}
	})
	return db
}

func seedProduction(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	spec := TableSpec{
		Name: "production",
		Columns: []Column{
			{Name: "id", Type: TypeInt},
			{Name: "country_id", Type: TypeInt},
			{Name: "coffee_type", Type: TypeText},
			{Name: "1990/91", Type: TypeDouble},
			{Name: "1991/92", Type: TypeDouble},
			{Name: "1992/93", Type: TypeDouble},
		},
	}
	if err := db.CreateTable(ctx, spec); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	rows := [][]any{
		{int64(1), int64(10), "Arabica", 100.0, nil, 120.0},
		{int64(2), int64(20), "Robusta", 50.5, 60.0, 70.0},
	}
	if _, err := db.InsertRows(ctx, spec.Name, spec.ColumnNames(), rows, 1); err != nil {
		t.Fatalf("InsertRows: %v", err)
	}

	countries := TableSpec{
		Name:    "countries",
		Columns: []Column{{Name: "id", Type: TypeInt}, {Name: "name", Type: TypeText}},
	}
	if err := db.CreateTable(ctx, countries); err != nil {
		t.Fatalf("CreateTable countries: %v", err)
	}
	if _, err := db.InsertRows(ctx, "countries", countries.ColumnNames(), [][]any{{int64(10), "Brazil"}, {int64(20), "Viet Nam"}, {int64(30), nil}}, 0); err != nil {
		t.Fatalf("InsertRows countries: %v", err)
	}
}

func TestDB_RoundTrip(t *testing.T) {
	for _, driver := range embeddedDrivers {
		t.Run(driver, func(t *testing.T) {
			db := setupTestDB(t, driver)
			seedProduction(t, db)
			ctx := context.Background()

			wide, err := db.LoadWideTable(ctx, "production")
			if err != nil {
				t.Fatalf("LoadWideTable: %v", err)
			}
			if len(wide.Columns) != 6 || wide.Columns[3] != "1990/91" {
				t.Fatalf("unexpected columns %v", wide.Columns)
			}
			if len(wide.Rows) != 2 {
				t.Fatalf("expected 2 rows, got %d", len(wide.Rows))
			}
			if wide.Rows[0][4] != nil {
				t.Errorf("expected NULL for missing cell, got %#v", wide.Rows[0][4])
			}

			countries, err := db.LoadCountries(ctx, "countries")
			if err != nil {
				t.Fatalf("LoadCountries: %v", err)
			}
			if countries[10] != "Brazil" || countries[20] != "Viet Nam" {
				t.Errorf("unexpected countries %v", countries)
			}
			if name, ok := countries[30]; !ok || name != "" {
				t.Errorf("NULL name should load as empty, got %q (present=%v)", name, ok)
			}

			records, err := production.ToLongFormat(wide, []string{"country_id"}, []string{"id", "coffee_type"}, countries)
			if err != nil {
				t.Fatalf("ToLongFormat: %v", err)
			}
			if len(records) != 5 {
				t.Fatalf("expected 5 records, got %d: %+v", len(records), records)
			}
			if records[0] != (production.Record{CountryID: 10, CountryName: "Brazil", Year: 1990, Production: 100}) {
				t.Errorf("unexpected first record %+v", records[0])
			}
			if records[1].Year != 1992 || records[1].Production != 120 {
				t.Errorf("missing cell should be skipped, got %+v", records[1])
			}
		})
	}
}

func TestDB_InsertRowsRejectsRaggedRows(t *testing.T) {
	db := setupTestDB(t, "sqlite3")
	ctx := context.Background()

	if err := db.CreateTable(ctx, TableSpec{Name: "t", Columns: []Column{{Name: "a", Type: TypeInt}, {Name: "b", Type: TypeInt}}}); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	_, err := db.InsertRows(ctx, "t", []string{"a", "b"}, [][]any{{int64(1), int64(2)}, {int64(3)}}, 10)
	if !errors.Is(err, ErrColumnMismatch) {
		t.Fatalf("expected ErrColumnMismatch, got %v", err)
	}

	wide, err := db.LoadWideTable(ctx, "t")
	if err != nil {
		t.Fatalf("LoadWideTable: %v", err)
	}
	if len(wide.Rows) != 0 {
		t.Errorf("no row should be written, got %d", len(wide.Rows))
	}
}

func TestDB_InsertRowsBatches(t *testing.T) {
	db := setupTestDB(t, "duckdb")
	ctx := context.Background()

	if err := db.CreateTable(ctx, TableSpec{Name: "numbers", Columns: []Column{{Name: "n", Type: TypeBigInt}}}); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	rows := make([][]any, 7)
	for i := range rows {
		rows[i] = []any{int64(i)}
	}
	n, err := db.InsertRows(ctx, "numbers", []string{"n"}, rows, 3)
	if err != nil {
		t.Fatalf("InsertRows: %v", err)
	}
	if n != 7 {
		t.Errorf("inserted = %d, want 7", n)
	}

	var count int
	if err := db.Conn().GetContext(ctx, &count, "SELECT COUNT(*) FROM numbers"); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}
}

func TestDB_MissingTable(t *testing.T) {
	db := setupTestDB(t, "sqlite3")
	if _, err := db.LoadWideTable(context.Background(), "nope"); err == nil {
		t.Error("expected error for missing table")
	}
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "coffee.db")
	db, err := New(&config.DatabaseConfig{Driver: "sqlite3", Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestNew_UnsupportedDriver(t *testing.T) {
	if _, err := New(&config.DatabaseConfig{Driver: "oracle"}); !errors.Is(err, ErrUnsupportedDriver) {
		t.Errorf("expected ErrUnsupportedDriver, got %v", err)
	}
}
