// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package database

import (
	"errors"
	"testing"
)

func TestDialectFor(t *testing.T) {
	for _, driver := range []string{"duckdb", "sqlite3", "postgres", "mysql"} {
		if _, err := DialectFor(driver); err != nil {
			t.Errorf("DialectFor(%q): %v", driver, err)
		}
	}
	if _, err := DialectFor("oracle"); !errors.Is(err, ErrUnsupportedDriver) {
		t.Errorf("expected ErrUnsupportedDriver, got %v", err)
	}
}

func TestDialect_Quote(t *testing.T) {
	tests := []struct {
		driver string
		ident  string
		want   string
	}{
		{"duckdb", "1990/91", `"1990/91"`},
		{"postgres", `we"ird`, `"we""ird"`},
		{"mysql", "country_id", "`country_id`"},
		{"mysql", "a`b", "`a``b`"},
	}
	for _, tt := range tests {
		d, err := DialectFor(tt.driver)
		if err != nil {
			t.Fatalf("DialectFor: %v", err)
		}
		if got := d.Quote(tt.ident); got != tt.want {
			t.Errorf("%s Quote(%q) = %s, want %s", tt.driver, tt.ident, got, tt.want)
		}
	}
}

func TestDialect_TypeName(t *testing.T) {
	tests := []struct {
		driver string
		typ    ColumnType
		want   string
	}{
		{"duckdb", TypeInt, "INTEGER"},
		{"mysql", TypeInt, "INT"},
		{"postgres", TypeBigInt, "BIGINT"},
		{"postgres", TypeDouble, "DOUBLE PRECISION"},
		{"sqlite3", TypeDouble, "REAL"},
		{"duckdb", TypeDouble, "DOUBLE"},
		{"sqlite3", TypeText, "TEXT"},
		{"mysql", TypeText, "VARCHAR(255)"},
	}
	for _, tt := range tests {
		d, _ := DialectFor(tt.driver)
		if got := d.TypeName(tt.typ); got != tt.want {
			t.Errorf("%s TypeName(%v) = %s, want %s", tt.driver, tt.typ, got, tt.want)
		}
	}
}

func TestDialect_CreateTableSQL(t *testing.T) {
	d, _ := DialectFor("mysql")
	got, err := d.CreateTableSQL(TableSpec{
		Name: "production",
		Columns: []Column{
			{Name: "id", Type: TypeInt},
			{Name: "coffee_type", Type: TypeText},
			{Name: "1990/91", Type: TypeDouble},
		},
	})
	if err != nil {
		t.Fatalf("CreateTableSQL: %v", err)
	}
	want := "CREATE TABLE IF NOT EXISTS `production` (`id` INT, `coffee_type` VARCHAR(255), `1990/91` DOUBLE)"
	if got != want {
		t.Errorf("CreateTableSQL =\n%s\nwant\n%s", got, want)
	}

	if _, err := d.CreateTableSQL(TableSpec{Name: "empty"}); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("expected ErrInvalidTable, got %v", err)
	}
}

func TestEffectiveBatchSize(t *testing.T) {
	db := &DB{}
	if got := db.effectiveBatchSize(0, 10); got != DefaultBatchSize {
		t.Errorf("default batch = %d", got)
	}
	if got := db.effectiveBatchSize(1000, 100); got != 300 {
		t.Errorf("capped batch = %d, want 300", got)
	}
	if got := db.effectiveBatchSize(10, 100000); got != 1 {
		t.Errorf("wide table batch = %d, want 1", got)
	}
}
