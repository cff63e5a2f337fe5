// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Command exporter reads the production and countries tables from the
// relational store and writes the long-format CSV files the trainer and
// server read.
//
//	exporter -out-dir data/predictionData
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/database"
	"github.com/tomtom215/coffeecast/internal/export"
	"github.com/tomtom215/coffeecast/internal/logging"
)

func main() {
	outDir := flag.String("out-dir", "", "directory for the CSV files (default: export.output_dir)")
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

	if err := run(ctx, cfg, *outDir); err != nil {
		logging.Error().Err(err).Msg("Export failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, outDir string) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if outDir == "" {
		outDir = cfg.Export.OutputDir
	}
	result, err := export.NewExporter(&cfg.Export, db).Export(ctx, outDir)
	if err != nil {
		return err
	}

	logging.Info().
		Str("production", result.ProductionPath).
		Str("countries_file", result.CountriesPath).
		Int("records", result.Records).
		Int("countries", result.Countries).
		Dur("duration", result.Duration).
		Msg("Export complete")
	return nil
}
