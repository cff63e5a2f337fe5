// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tomtom215/coffeecast/internal/production"
)

// ErrCountryNotFound is returned for a country id or name absent from both
// the directory and the history.
var ErrCountryNotFound = errors.New("country not found")

// CountrySummary is one entry of the country selector.
type CountrySummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	FirstYear int    `json:"first_year,omitempty"`
	LastYear  int    `json:"last_year,omitempty"`
	Points    int    `json:"points"`
}

// Dataset is the exported history and country directory, indexed for
// lookups. It is read-only after construction.
type Dataset struct {
	records   []production.Record
	countries production.CountryDirectory
	histories map[int64]production.CountryHistory
	byName    map[string]int64
	summaries []CountrySummary
}

// LoadDataset reads both export files from dir.
func LoadDataset(dir string) (*Dataset, error) {
	records, err := ReadProduction(filepath.Join(dir, ProductionFile))
	if err != nil {
		return nil, fmt.Errorf("load production history: %w", err)
	}
	countries, err := ReadCountries(filepath.Join(dir, CountriesFile))
	if err != nil {
		return nil, fmt.Errorf("load country directory: %w", err)
	}
	return NewDataset(records, countries), nil
}

// NewDataset indexes records and countries. Names missing from the records
// are filled from the directory.
func NewDataset(records []production.Record, countries production.CountryDirectory) *Dataset {
	histories := production.GroupByCountry(records)
	for id, h := range histories {
		if h.CountryName == "" {
			h.CountryName = countries[id]
			histories[id] = h
		}
	}

	d := &Dataset{
		records:   records,
		countries: countries,
		histories: histories,
		byName:    make(map[string]int64),
	}

	ids := make(map[int64]bool, len(countries)+len(histories))
	for id := range countries {
		ids[id] = true
	}
	for id := range histories {
		ids[id] = true
	}
	for id := range ids {
		s := CountrySummary{ID: id, Name: d.CountryName(id)}
		if h, ok := histories[id]; ok && h.Len() > 0 {
			s.FirstYear = h.FirstYear()
			s.LastYear = h.LastYear()
			s.Points = h.Len()
		}
		d.summaries = append(d.summaries, s)
		if s.Name != "" {
			d.byName[strings.ToLower(s.Name)] = id
		}
	}
	sort.Slice(d.summaries, func(i, j int) bool {
		a, b := d.summaries[i], d.summaries[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return d
}

// Records returns every production record ordered by country and year.
func (d *Dataset) Records() []production.Record {
	return d.records
}

// Histories returns the per-country histories. The map is shared and must
// not be modified.
func (d *Dataset) Histories() map[int64]production.CountryHistory {
	return d.histories
}

// History returns the history of one country. A country listed in the
// directory with no production has an empty history.
func (d *Dataset) History(id int64) (production.CountryHistory, error) {
	if h, ok := d.histories[id]; ok {
		return h, nil
	}
	if name, ok := d.countries[id]; ok {
		return production.CountryHistory{CountryID: id, CountryName: name}, nil
	}
	return production.CountryHistory{}, fmt.Errorf("%w: id %d", ErrCountryNotFound, id)
}

// CountryName returns the directory name of id, falling back to the name
// carried by its records.
func (d *Dataset) CountryName(id int64) string {
	if name := d.countries[id]; name != "" {
		return name
	}
	return d.histories[id].CountryName
}

// CountryByName finds a country id by case-insensitive name.
func (d *Dataset) CountryByName(name string) (int64, error) {
	id, ok := d.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrCountryNotFound, name)
	}
	return id, nil
}

// Countries lists every known country ordered by name.
func (d *Dataset) Countries() []CountrySummary {
	return d.summaries
}
