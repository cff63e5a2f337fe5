// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package production

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseYearLabel(t *testing.T) {
	tests := []struct {
		label  string
		want   int
		wantOK bool
	}{
		{"1990/91", 1990, true},
		{"1990-91", 1990, true},
		{"1990_91", 1990, true},
		{"2005", 2005, true},
		{" 2019/20 ", 2019, true},
		{"total", 0, false},
		{"coffee_type", 0, false},
		{"", 0, false},
		{"y1990", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseYearLabel(tt.label)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseYearLabel(%q) = (%d, %v), want (%d, %v)", tt.label, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDetectYearColumns(t *testing.T) {
	columns := []string{"id", "country_id", "coffee_type", "1990/91", "1991/92", "Total", "notes", "1991"}
	years, anomalies := DetectYearColumns(columns, []string{"id", "country_id", "coffee_type", "total"})

	if len(years) != 2 {
		t.Fatalf("expected 2 year columns, got %+v", years)
	}
	if years[0] != (YearColumn{Index: 3, Label: "1990/91", Year: 1990}) {
		t.Errorf("unexpected first year column %+v", years[0])
	}
	if years[1].Year != 1991 || years[1].Index != 4 {
		t.Errorf("unexpected second year column %+v", years[1])
	}
	if !reflect.DeepEqual(anomalies, []string{"notes", "1991"}) {
		t.Errorf("anomalies = %v, want [notes 1991]", anomalies)
	}
}

func TestToLongFormat_SkipsMissing(t *testing.T) {
	table := WideTable{
		Columns: []string{"id", "country_id", "1990/91", "1991/92", "1992/93"},
		Rows: [][]any{
			{int64(1), int64(7), float64(100), nil, float64(120)},
		},
	}

	records, err := ToLongFormat(table, []string{"country_id"}, []string{"id", "country_id"}, CountryDirectory{7: "Brazil"})
	if err != nil {
		t.Fatalf("ToLongFormat: %v", err)
	}

	want := []Record{
		{CountryID: 7, CountryName: "Brazil", Year: 1990, Production: 100},
		{CountryID: 7, CountryName: "Brazil", Year: 1992, Production: 120},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %+v, want %+v", records, want)
	}
}

func TestToLongFormat_CellTypesAndOrdering(t *testing.T) {
	table := WideTable{
		Columns: []string{"country_id", "coffee_type", "1991/92", "1990/91", "total"},
		Rows: [][]any{
			{[]byte("9"), "Arabica", []byte("250.5"), "", float64(999)},
			{int32(3), "Robusta", "  80 ", int64(70), float64(999)},
			{"not-an-id", "Robusta", float64(1), float64(1), float64(1)},
			{int64(5), "Arabica", float64(-4), "n/a", nil},
		},
	}

	records, err := ToLongFormat(table, []string{"country_id"}, []string{"id", "coffee_type", "total"}, CountryDirectory{3: "Colombia"})
	if err != nil {
		t.Fatalf("ToLongFormat: %v", err)
	}

	want := []Record{
		{CountryID: 3, CountryName: "Colombia", Year: 1990, Production: 70},
		{CountryID: 3, CountryName: "Colombia", Year: 1991, Production: 80},
		{CountryID: 9, CountryName: "", Year: 1991, Production: 250.5},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %+v, want %+v", records, want)
	}
}

func TestToLongFormat_DuplicateCountryRowKeepsFirst(t *testing.T) {
	table := WideTable{
		Columns: []string{"country_id", "2000"},
		Rows: [][]any{
			{int64(1), float64(10)},
			{int64(1), float64(20)},
		},
	}

	records, err := ToLongFormat(table, []string{"country_id"}, nil, nil)
	if err != nil {
		t.Fatalf("ToLongFormat: %v", err)
	}
	if len(records) != 1 || records[0].Production != 10 {
		t.Errorf("expected first value kept, got %+v", records)
	}
}

func TestToLongFormat_SchemaErrors(t *testing.T) {
	tests := []struct {
		name      string
		table     WideTable
		idColumns []string
	}{
		{
			name:      "no year columns",
			table:     WideTable{Columns: []string{"id", "country_id", "coffee_type", "total"}},
			idColumns: []string{"country_id"},
		},
		{
			name:      "only anomalous labels",
			table:     WideTable{Columns: []string{"country_id", "notes", "remarks"}},
			idColumns: []string{"country_id"},
		},
		{
			name:      "missing id column",
			table:     WideTable{Columns: []string{"1990/91"}},
			idColumns: []string{"country_id"},
		},
		{
			name:      "no id columns configured",
			table:     WideTable{Columns: []string{"country_id", "1990/91"}},
			idColumns: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToLongFormat(tt.table, tt.idColumns, []string{"id", "country_id", "coffee_type", "total"}, nil)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
		})
	}
}
