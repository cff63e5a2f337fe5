// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package export turns the relational production table into the
// long-format CSV files the trainer and the dashboard read, and reads them
// back.
//
// Two files are written to the output directory:
//
//	production_long.csv  country_id,country_name,year,production
//	countries.csv        id,name
//
// production_long.csv is ordered by country id then year.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/metrics"
	"github.com/tomtom215/coffeecast/internal/production"
)

// Source is the relational store read by the exporter.
type Source interface {
	LoadWideTable(ctx context.Context, table string) (production.WideTable, error)
	LoadCountries(ctx context.Context, table string) (production.CountryDirectory, error)
}

// Result describes a completed export.
type Result struct {
	Dir            string        `json:"dir"`
	ProductionPath string        `json:"production_path"`
	CountriesPath  string        `json:"countries_path"`
	Records        int           `json:"records"`
	Countries      int           `json:"countries"`
	Duration       time.Duration `json:"duration"`
}

// Exporter writes the CSV export from a Source.
type Exporter struct {
	cfg *config.ExportConfig
	src Source
}

// NewExporter creates an exporter.
func NewExporter(cfg *config.ExportConfig, src Source) *Exporter {
	return &Exporter{cfg: cfg, src: src}
}

// Export reads the production and countries tables and writes both files to
// outDir, creating it if needed. An empty outDir uses the configured one.
func (e *Exporter) Export(ctx context.Context, outDir string) (*Result, error) {
	start := time.Now()
	if outDir == "" {
		outDir = e.cfg.OutputDir
	}

	logging.Info().
		Str("production_table", e.cfg.ProductionTable).
		Str("countries_table", e.cfg.CountriesTable).
		Msg("Reading production and countries tables")

	wide, err := e.src.LoadWideTable(ctx, e.cfg.ProductionTable)
	if err != nil {
		return nil, err
	}
	countries, err := e.src.LoadCountries(ctx, e.cfg.CountriesTable)
	if err != nil {
		return nil, err
	}
	logging.Info().
		Int("production_rows", len(wide.Rows)).
		Int("production_columns", len(wide.Columns)).
		Int("countries", len(countries)).
		Msg("Tables loaded")

	records, err := production.ToLongFormat(wide, e.cfg.IDColumns, e.cfg.ReservedColumns, countries)
	if err != nil {
		return nil, err
	}

	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	result := &Result{
		Dir:            outDir,
		ProductionPath: filepath.Join(outDir, ProductionFile),
		CountriesPath:  filepath.Join(outDir, CountriesFile),
		Records:        len(records),
		Countries:      len(countries),
	}

	var buf bytes.Buffer
	if err := WriteProduction(&buf, records); err != nil {
		return nil, fmt.Errorf("encode %s: %w", ProductionFile, err)
	}
	if err := writeFileAtomic(result.ProductionPath, buf.Bytes()); err != nil {
		return nil, err
	}

	buf.Reset()
	if err := WriteCountries(&buf, countries); err != nil {
		return nil, fmt.Errorf("encode %s: %w", CountriesFile, err)
	}
	if err := writeFileAtomic(result.CountriesPath, buf.Bytes()); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	metrics.ExportRecords.Set(float64(len(records)))

	logging.Info().
		Str("dir", outDir).
		Int("records", result.Records).
		Int("countries", result.Countries).
		Dur("duration", result.Duration).
		Msg("Export completed")
	return result, nil
}

// writeFileAtomic writes data to a temp file beside path and renames it
// into place, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // no-op after rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error already being returned
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}
	return nil
}
