// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package production

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/metrics"
)

// WideTable is a production table as read from the relational store: one
// row per country and one column per year period. Cells hold whatever the
// driver scanned (nil, numbers, strings or []byte).
type WideTable struct {
	Columns []string
	Rows    [][]any
}

// YearColumn is a column whose label parsed as a year.
type YearColumn struct {
	Index int
	Label string
	Year  int
}

// ParseYearLabel extracts the starting year of a period label. "1990/91"
// and "1990-91" give 1990, "2005" gives 2005. The leading digit run is
// parsed first; when there is none the trimmed label is parsed whole.
func ParseYearLabel(label string) (int, bool) {
	s := strings.TrimSpace(label)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end > 0 {
		if year, err := strconv.Atoi(s[:end]); err == nil {
			return year, true
		}
	}
	if year, err := strconv.Atoi(s); err == nil {
		return year, true
	}
	return 0, false
}

// DetectYearColumns classifies columns not in excluded (case-insensitive).
// Labels that do not parse, and labels repeating a year already claimed by
// an earlier column, are returned as anomalies.
func DetectYearColumns(columns, excluded []string) ([]YearColumn, []string) {
	skip := make(map[string]bool, len(excluded))
	for _, c := range excluded {
		skip[strings.ToLower(c)] = true
	}

	var years []YearColumn
	var anomalies []string
	claimed := make(map[int]bool)
	for i, label := range columns {
		if skip[strings.ToLower(label)] {
			continue
		}
		year, ok := ParseYearLabel(label)
		if !ok || claimed[year] {
			anomalies = append(anomalies, label)
			continue
		}
		claimed[year] = true
		years = append(years, YearColumn{Index: i, Label: label, Year: year})
	}
	return years, anomalies
}

// ToLongFormat converts the wide table into one Record per non-missing
// (country, year) cell, joined with the country directory and sorted by
// country id and year.
//
// The first of idColumns holds the country id. idColumns and
// reservedColumns are never parsed as years. Columns whose label is not a
// year are logged and skipped. A table without a single year column fails
// with *SchemaError.
func ToLongFormat(table WideTable, idColumns, reservedColumns []string, countries CountryDirectory) ([]Record, error) {
	if len(idColumns) == 0 {
		return nil, &SchemaError{Reason: "no id column configured"}
	}

	idIdx := columnIndex(table.Columns, idColumns[0])
	if idIdx < 0 {
		return nil, &SchemaError{Reason: "id column " + strconv.Quote(idColumns[0]) + " not found", Columns: table.Columns}
	}

	excluded := make([]string, 0, len(idColumns)+len(reservedColumns))
	excluded = append(excluded, idColumns...)
	excluded = append(excluded, reservedColumns...)

	yearCols, anomalies := DetectYearColumns(table.Columns, excluded)
	for _, label := range anomalies {
		metrics.YearLabelAnomalies.Inc()
		logging.Warn().Str("column", label).Msg("Production column is not a distinct year period, skipping")
	}
	if len(yearCols) == 0 {
		return nil, &SchemaError{Reason: "no year columns detected", Columns: table.Columns}
	}

	type key struct {
		id   int64
		year int
	}
	seen := make(map[key]bool)
	records := make([]Record, 0, len(table.Rows)*len(yearCols))

	for rowNum, row := range table.Rows {
		id, ok := cellInt(cell(row, idIdx))
		if !ok {
			logging.Warn().Int("row", rowNum+1).Interface("value", cell(row, idIdx)).Msg("Production row has no usable country id, skipping")
			continue
		}

		for _, yc := range yearCols {
			value, ok := cellFloat(cell(row, yc.Index))
			if !ok {
				continue
			}
			if value < 0 {
				logging.Warn().Int64("country_id", id).Int("year", yc.Year).Float64("value", value).Msg("Negative production treated as missing")
				continue
			}
			k := key{id: id, year: yc.Year}
			if seen[k] {
				logging.Warn().Int64("country_id", id).Int("year", yc.Year).Msg("Duplicate country/year in production table, keeping first")
				continue
			}
			seen[k] = true
			records = append(records, Record{
				CountryID:   id,
				CountryName: countries[id],
				Year:        yc.Year,
				Production:  value,
			})
		}
	}

	SortRecords(records)
	return records, nil
}

func columnIndex(columns []string, name string) int {
	for i, c := range columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

func cell(row []any, idx int) any {
	if idx < len(row) {
		return row[idx]
	}
	return nil
}

// cellFloat reports false for missing cells: nil, blank or non-numeric
// text, NaN and infinities.
func cellFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case []byte:
		return cellFloat(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// cellInt accepts integral numbers stored as any numeric or text type.
func cellInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	}
	f, ok := cellFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
