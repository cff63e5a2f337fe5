// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/coffeecast/internal/api"
	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/export"
	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/metrics"
	"github.com/tomtom215/coffeecast/internal/model"
	"github.com/tomtom215/coffeecast/internal/model/storage"
)

// loadServingState reads the dataset and the latest model artifact. Neither
// failure is fatal; the error is kept for the dashboard banner.
func loadServingState(ctx context.Context, cfg *config.Config, store *storage.Store) api.Dependencies {
	deps := api.Dependencies{Config: cfg}

	dataset, err := export.LoadDataset(cfg.Export.OutputDir)
	if err != nil {
		logging.Warn().Err(err).Str("dir", cfg.Export.OutputDir).Msg("Production data not available, run the exporter")
		deps.DatasetErr = err
	} else {
		deps.Dataset = dataset
		logging.Info().
			Int("countries", len(dataset.Countries())).
			Int("records", len(dataset.Records())).
			Msg("Production data loaded")
	}

	if store == nil {
		deps.ModelErr = fmt.Errorf("model store %s could not be opened", cfg.Model.StoreDir)
		return deps
	}

	artifact, err := model.LoadArtifact(ctx, store, cfg.Model.Name, 0)
	if err != nil {
		logging.Warn().Err(err).Str("model", cfg.Model.Name).Msg("Forecast model not available, run the trainer")
		deps.ModelErr = err
		return deps
	}
	deps.Model = artifact
	metrics.ModelVersion.Set(float64(artifact.Metadata.Version))
	logging.Info().
		Str("model", artifact.Metadata.Name).
		Int("version", artifact.Metadata.Version).
		Float64("holdout_mae", artifact.Metadata.Holdout.MAE).
		Float64("holdout_r2", artifact.Metadata.Holdout.R2).
		Msg("Forecast model loaded")
	return deps
}
