// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/coffeecast/internal/production"
)

const (
	// ProductionFile is the long-format history file name.
	ProductionFile = "production_long.csv"

	// CountriesFile is the country directory file name.
	CountriesFile = "countries.csv"
)

var (
	productionHeader = []string{"country_id", "country_name", "year", "production"}
	countriesHeader  = []string{"id", "name"}
)

// WriteProduction writes records as production_long.csv rows, in the order
// given.
func WriteProduction(w io.Writer, records []production.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(productionHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.CountryID, 10),
			r.CountryName,
			strconv.Itoa(r.Year),
			strconv.FormatFloat(r.Production, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCountries writes the directory as countries.csv rows ordered by id.
func WriteCountries(w io.Writer, countries production.CountryDirectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(countriesHeader); err != nil {
		return err
	}
	for _, c := range countries.Sorted() {
		if err := cw.Write([]string{strconv.FormatInt(c.ID, 10), c.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadProduction parses a production_long.csv file. Columns may appear in
// any order; extra columns are ignored. Non-finite or negative production
// and a repeated (country_id, year) pair are rejected.
func ReadProduction(path string) ([]production.Record, error) {
	type key struct {
		id   int64
		year int
	}
	var records []production.Record
	seen := make(map[key]bool)
	err := readCSV(path, productionHeader, func(get func(string) string) error {
		id, err := strconv.ParseInt(strings.TrimSpace(get("country_id")), 10, 64)
		if err != nil {
			return fmt.Errorf("country_id: %w", err)
		}
		year, err := strconv.Atoi(strings.TrimSpace(get("year")))
		if err != nil {
			return fmt.Errorf("year: %w", err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(get("production")), 64)
		if err != nil {
			return fmt.Errorf("production: %w", err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("production: non-finite value %v", value)
		}
		if value < 0 {
			return fmt.Errorf("production: negative value %v", value)
		}
		k := key{id: id, year: year}
		if seen[k] {
			return fmt.Errorf("duplicate observation for country %d year %d", id, year)
		}
		seen[k] = true
		records = append(records, production.Record{
			CountryID:   id,
			CountryName: get("country_name"),
			Year:        year,
			Production:  value,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	production.SortRecords(records)
	return records, nil
}

// ReadCountries parses a countries.csv file.
func ReadCountries(path string) (production.CountryDirectory, error) {
	dir := make(production.CountryDirectory)
	err := readCSV(path, countriesHeader, func(get func(string) string) error {
		id, err := strconv.ParseInt(strings.TrimSpace(get("id")), 10, 64)
		if err != nil {
			return fmt.Errorf("id: %w", err)
		}
		dir[id] = get("name")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dir, nil
}

// readCSV validates the header of path against required and calls row for
// each data line. Errors carry the file name and line number.
func readCSV(path string, required []string, row func(get func(string) string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: empty file", path)
		}
		return fmt.Errorf("%s: read header: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%s: missing column %q in header %v", path, col, header)
		}
	}

	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		line, _ := r.FieldPos(0)
		get := func(col string) string {
			if i := index[col]; i < len(fields) {
				return fields[i]
			}
			return ""
		}
		if err := row(get); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
}
