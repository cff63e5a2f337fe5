// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Command trainer fits the forecast model on the exported history, scores
// it on the held-out final years and stores it as a new artifact version.
// A running server picks the new version up on its next start.
//
//	trainer -data-dir data/predictionData -holdout 3
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/model/storage"
	"github.com/tomtom215/coffeecast/internal/training"
)

func main() {
	dataDir := flag.String("data-dir", "", "directory with the exported CSV files (default: export.output_dir)")
	holdout := flag.Int("holdout", 0, "final years held out for evaluation (default: model.holdout_years)")
	refit := flag.Bool("refit", false, "refit on all samples after evaluation")
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

	if *dataDir != "" {
		cfg.Export.OutputDir = *dataDir
	}
	if *holdout > 0 {
		cfg.Model.HoldoutYears = *holdout
	}
	if *refit {
		cfg.Model.RefitFull = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Training failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := storage.NewStore(cfg.Model.StoreDir)
	if err != nil {
		return err
	}

	// The trainer logs the holdout metrics and pruning itself.
	_, err = training.NewTrainer(&cfg.Model, cfg.Export.OutputDir, store).Train(ctx)
	return err
}
