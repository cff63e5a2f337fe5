// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package production

import (
	"reflect"
	"testing"
)

func TestGroupByCountry(t *testing.T) {
	records := []Record{
		{CountryID: 2, CountryName: "Vietnam", Year: 2001, Production: 30},
		{CountryID: 1, CountryName: "Brazil", Year: 2002, Production: 12},
		{CountryID: 2, CountryName: "Vietnam", Year: 2000, Production: 25},
		{CountryID: 1, CountryName: "Brazil", Year: 2000, Production: 10},
	}
	original := append([]Record(nil), records...)

	groups := GroupByCountry(records)

	if !reflect.DeepEqual(records, original) {
		t.Error("GroupByCountry must not reorder its input")
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 countries, got %d", len(groups))
	}

	brazil := groups[1]
	if brazil.CountryName != "Brazil" || brazil.Len() != 2 {
		t.Fatalf("unexpected Brazil history %+v", brazil)
	}
	if brazil.FirstYear() != 2000 || brazil.LastYear() != 2002 {
		t.Errorf("years = %d..%d, want 2000..2002", brazil.FirstYear(), brazil.LastYear())
	}
	if !reflect.DeepEqual(brazil.Values(), []float64{10, 12}) {
		t.Errorf("values = %v, want [10 12]", brazil.Values())
	}
	if brazil.FirstYear() != 2000 || brazil.LastYear() != 2002 {
		t.Errorf("first/last = %d/%d", brazil.FirstYear(), brazil.LastYear())
	}
}

func TestCountryHistory_Empty(t *testing.T) {
	var h CountryHistory
	if h.LastYear() != 0 || h.FirstYear() != 0 || len(h.Values()) != 0 {
		t.Errorf("empty history should report zeros, got %+v", h)
	}
}

func TestCountryDirectory_Sorted(t *testing.T) {
	dir := CountryDirectory{3: "Colombia", 1: "Brazil", 2: "Vietnam"}
	want := []Country{{1, "Brazil"}, {2, "Vietnam"}, {3, "Colombia"}}
	if got := dir.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}
