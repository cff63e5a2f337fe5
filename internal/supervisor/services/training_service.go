// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coffeecast/internal/training"
)

// ModelTrainer is the training job run on a schedule.
type ModelTrainer interface {
	Train(ctx context.Context) (*training.Report, error)
	LastReport() *training.Report
}

// TrainingServiceConfig holds configuration for the training service.
type TrainingServiceConfig struct {
	// TrainOnStartup triggers training when the service starts.
	TrainOnStartup bool

	// TrainInterval is how often to retrain. Default: 24h.
	TrainInterval time.Duration

	// RunTimeout bounds one training run. Default: 30m.
	RunTimeout time.Duration
}

// TrainingService retrains the model on a schedule. New artifact versions
// are written to the store; a running server keeps the model it loaded at
// startup.
type TrainingService struct {
	trainer ModelTrainer
	config  TrainingServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewTrainingService creates a new training service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainingService(trainer ModelTrainer, cfg TrainingServiceConfig, logger zerolog.Logger) *TrainingService {
	if cfg.TrainInterval <= 0 {
		cfg.TrainInterval = 24 * time.Hour
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 30 * time.Minute
	}
	return &TrainingService{
		trainer: trainer,
		config:  cfg,
		logger:  logger.With().Str("service", "training").Logger(),
		name:    "training-service",
	}
}

// Serve implements suture.Service. A failed run is logged and retried on
// the next tick; it never stops the service.
func (s *TrainingService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("training service starting")

	if s.config.TrainOnStartup {
		s.run(ctx, "startup")
	}

	ticker := time.NewTicker(s.config.TrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("training service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.run(ctx, "scheduled")
		}
	}
}

func (s *TrainingService) run(ctx context.Context, trigger string) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	start := time.Now()
	report, err := s.trainer.Train(runCtx)
	if err != nil {
		event := s.logger.Warn().Err(err).Str("trigger", trigger)
		if last := s.trainer.LastReport(); last != nil {
			event = event.Int("last_good_version", last.Metadata.Version)
		}
		event.Msg("training run failed, will retry on schedule")
		return
	}

	s.logger.Info().
		Str("trigger", trigger).
		Int("version", report.Metadata.Version).
		Float64("holdout_mae", report.Holdout.MAE).
		Dur("duration", time.Since(start)).
		Msg("training run complete")
}

// String returns the service name for logging.
func (s *TrainingService) String() string {
	return s.name
}
