// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/coffeecast/internal/api"
	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/model/storage"
	"github.com/tomtom215/coffeecast/internal/supervisor"
	"github.com/tomtom215/coffeecast/internal/supervisor/services"
	"github.com/tomtom215/coffeecast/internal/training"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("export_dir", cfg.Export.OutputDir).
		Str("model_dir", cfg.Model.StoreDir).
		Str("model", cfg.Model.Name).
		Bool("training_enabled", cfg.Training.Enabled).
		Msg("Starting Coffeecast")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.NewStore(cfg.Model.StoreDir)
	if err != nil {
		logging.Error().Err(err).Str("dir", cfg.Model.StoreDir).Msg("Failed to open model store")
	}

	deps := loadServingState(ctx, cfg, store)

	handler, err := api.NewHandler(deps)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Server)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Training.Enabled && store != nil {
		trainer := training.NewTrainer(&cfg.Model, cfg.Export.OutputDir, store)
		tree.AddJobService(services.NewTrainingService(trainer, services.TrainingServiceConfig{
			TrainOnStartup: cfg.Training.OnStartup,
			TrainInterval:  cfg.Training.Interval,
		}, logging.WithComponent("training")))
		logging.Info().Dur("interval", cfg.Training.Interval).Msg("Training service added")
	}

	tree.AddAPIService(services.NewCacheSweepService(handler, 10*time.Minute, logging.WithComponent("api")))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Coffeecast stopped")
}
