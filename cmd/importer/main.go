// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Command importer loads every sheet of the production workbook into the
// configured relational store, one table per sheet.
//
//	importer -file data/clean/Dataset.xlsx
//
// Without -file the configured import.workbook_path (WORKBOOK_PATH) is used.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/database"
	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/spreadsheet"
)

func main() {
	file := flag.String("file", "", "workbook to import (default: import.workbook_path)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *file); err != nil {
		logging.Error().Err(err).Msg("Import failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, file string) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	stats, err := spreadsheet.NewImporter(&cfg.Import, db).Import(ctx, file)
	if err != nil {
		return err
	}

	for _, sheet := range stats.Sheets {
		logging.Info().
			Str("sheet", sheet.Sheet).
			Str("table", sheet.Table).
			Int("columns", sheet.Columns).
			Int64("rows", sheet.Rows).
			Int64("skipped", sheet.Skipped).
			Msg("Sheet imported")
	}
	logging.Info().
		Str("workbook", stats.Workbook).
		Int("sheets", len(stats.Sheets)).
		Int64("rows", stats.Rows).
		Dur("duration", stats.Duration()).
		Float64("rows_per_second", stats.RowsPerSecond()).
		Msg("Import complete")
	return nil
}
