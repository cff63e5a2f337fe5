// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package production holds the production data model and the transform
// from the wide per-country table (one column per year period) into
// long-format records.
package production

import (
	"sort"
)

// Record is one country's production for one year. Records are values;
// nothing downstream mutates them.
type Record struct {
	CountryID   int64   `json:"country_id"`
	CountryName string  `json:"country_name"`
	Year        int     `json:"year"`
	Production  float64 `json:"production"`
}

// CountryDirectory maps country id to display name.
type CountryDirectory map[int64]string

// Country is one directory entry.
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Sorted returns the directory entries ordered by id.
func (d CountryDirectory) Sorted() []Country {
	out := make([]Country, 0, len(d))
	for id, name := range d {
		out = append(out, Country{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CountryHistory is the ordered production series of one country.
// Records are ascending by year; gaps are allowed.
type CountryHistory struct {
	CountryID   int64
	CountryName string
	Records     []Record
}

// Len returns the number of observed points.
func (h CountryHistory) Len() int {
	return len(h.Records)
}

// Values returns a fresh slice of production values in year order.
func (h CountryHistory) Values() []float64 {
	out := make([]float64, len(h.Records))
	for i, r := range h.Records {
		out[i] = r.Production
	}
	return out
}

// FirstYear returns the earliest observed year, or 0 for an empty history.
func (h CountryHistory) FirstYear() int {
	if len(h.Records) == 0 {
		return 0
	}
	return h.Records[0].Year
}

// LastYear returns the latest observed year, or 0 for an empty history.
func (h CountryHistory) LastYear() int {
	if len(h.Records) == 0 {
		return 0
	}
	return h.Records[len(h.Records)-1].Year
}

// SortRecords orders records by country id then year, in place.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CountryID != records[j].CountryID {
			return records[i].CountryID < records[j].CountryID
		}
		return records[i].Year < records[j].Year
	})
}

// GroupByCountry splits records into per-country histories sorted by year.
// The input slice is not modified.
func GroupByCountry(records []Record) map[int64]CountryHistory {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	SortRecords(sorted)

	out := make(map[int64]CountryHistory)
	for _, r := range sorted {
		h := out[r.CountryID]
		h.CountryID = r.CountryID
		if h.CountryName == "" {
			h.CountryName = r.CountryName
		}
		h.Records = append(h.Records, r)
		out[r.CountryID] = h
	}
	return out
}
