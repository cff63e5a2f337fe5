// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package training runs the offline fit: exported history in, versioned
// model artifact with holdout scores out.
package training

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/export"
	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/metrics"
	"github.com/tomtom215/coffeecast/internal/model"
	"github.com/tomtom215/coffeecast/internal/model/storage"
)

// ErrTrainingInProgress is returned when Train is called while another
// run on the same Trainer is active.
var ErrTrainingInProgress = errors.New("training already in progress")

// Report describes one completed training run.
type Report struct {
	Model    *model.LinearModel
	Metadata storage.ModelMetadata
	Holdout  model.Metrics
	Pruned   int
}

// Trainer fits and stores the forecast model.
type Trainer struct {
	cfg     *config.ModelConfig
	dataDir string
	store   *storage.Store

	mu      sync.Mutex
	running bool
	last    *Report
}

// NewTrainer creates a Trainer reading the export in dataDir.
func NewTrainer(cfg *config.ModelConfig, dataDir string, store *storage.Store) *Trainer {
	return &Trainer{cfg: cfg, dataDir: dataDir, store: store}
}

// Train loads the dataset, holds out the last HoldoutYears target years,
// fits on the rest, scores the holdout, optionally refits on everything,
// then saves and prunes artifacts.
func (t *Trainer) Train(ctx context.Context) (*Report, error) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return nil, ErrTrainingInProgress
	}
	t.running = true
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	start := time.Now()
	report, err := t.train(ctx, start)
	if err != nil {
		metrics.RecordTraining(time.Since(start), 0, 0, 0, 0, err)
		logging.Error().Err(err).Str("model", t.cfg.Name).Msg("Training failed")
		return nil, err
	}

	h := report.Holdout
	metrics.RecordTraining(time.Since(start), report.Metadata.Version, h.MAE, h.RMSE, h.R2, nil)
	logging.Info().
		Str("model", t.cfg.Name).
		Int("version", report.Metadata.Version).
		Int("train_samples", report.Metadata.TrainSamples).
		Int("test_samples", report.Metadata.TestSamples).
		Int("cutoff_year", report.Metadata.CutoffYear).
		Float64("mae", h.MAE).
		Float64("rmse", h.RMSE).
		Float64("r2", h.R2).
		Int("pruned", report.Pruned).
		Dur("duration", time.Since(start)).
		Msg("Training completed")

	t.mu.Lock()
	t.last = report
	t.mu.Unlock()
	return report, nil
}

func (t *Trainer) train(ctx context.Context, start time.Time) (*Report, error) {
	ds, err := export.LoadDataset(t.dataDir)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	samples := model.BuildDataset(ds.Histories())
	train, test, cutoff := model.SplitHoldout(samples, t.cfg.HoldoutYears)
	logging.Info().
		Int("countries", len(ds.Histories())).
		Int("samples", len(samples)).
		Int("train", len(train)).
		Int("test", len(test)).
		Int("cutoff_year", cutoff).
		Msg("Training dataset built")

	fitted, err := model.Fit(train)
	if err != nil {
		return nil, fmt.Errorf("fit on years before %d: %w", cutoff, err)
	}
	holdout, err := model.Evaluate(fitted, test)
	if err != nil {
		return nil, fmt.Errorf("evaluate holdout: %w", err)
	}

	trainSamples := len(train)
	if t.cfg.RefitFull {
		fitted, err = model.Fit(samples)
		if err != nil {
			return nil, fmt.Errorf("refit on all samples: %w", err)
		}
		trainSamples = len(samples)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lastYear := 0
	for _, h := range ds.Histories() {
		lastYear = max(lastYear, h.LastYear())
	}

	meta, err := model.SaveArtifact(ctx, t.store, t.cfg.Name, fitted, storage.ModelMetadata{
		TrainedAt:      start.UTC(),
		TrainSamples:   trainSamples,
		TestSamples:    len(test),
		Countries:      len(ds.Histories()),
		HoldoutYears:   t.cfg.HoldoutYears,
		CutoffYear:     cutoff,
		LastObservedYr: lastYear,
		RefitFull:      t.cfg.RefitFull,
		Holdout: storage.Evaluation{
			MAE:  holdout.MAE,
			RMSE: holdout.RMSE,
			R2:   holdout.R2,
			N:    holdout.N,
		},
		TrainingDurationMS: time.Since(start).Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}

	pruned, err := t.store.Prune(ctx, t.cfg.Name, t.cfg.KeepVersions)
	if err != nil {
		logging.Warn().Err(err).Str("model", t.cfg.Name).Msg("Failed to prune old model versions")
	}

	return &Report{Model: fitted, Metadata: *meta, Holdout: holdout, Pruned: pruned}, nil
}

// LastReport returns the most recent successful run, or nil.
func (t *Trainer) LastReport() *Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
