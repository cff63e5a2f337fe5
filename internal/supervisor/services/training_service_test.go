// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coffeecast/internal/training"
)

type mockTrainer struct {
	mu          sync.Mutex
	calls       int
	err         error
	last        *training.Report
	lastQueried int
}

func (m *mockTrainer) Train(context.Context) (*training.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	m.last = &training.Report{}
	return m.last, nil
}

func (m *mockTrainer) LastReport() *training.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQueried++
	return m.last
}

func (m *mockTrainer) getCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestTrainingService_TrainOnStartup(t *testing.T) {
	trainer := &mockTrainer{}
	svc := NewTrainingService(trainer, TrainingServiceConfig{TrainOnStartup: true, TrainInterval: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve returned %v", err)
	}

	if got := trainer.getCalls(); got != 1 {
		t.Errorf("Train() called %d times, want 1", got)
	}
}

func TestTrainingService_NoTrainOnStartup(t *testing.T) {
	trainer := &mockTrainer{}
	svc := NewTrainingService(trainer, TrainingServiceConfig{TrainInterval: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if got := trainer.getCalls(); got != 0 {
		t.Errorf("Train() called %d times, want 0", got)
	}
}

func TestTrainingService_ScheduledAndFailing(t *testing.T) {
	trainer := &mockTrainer{err: errors.New("no export yet")}
	svc := NewTrainingService(trainer, TrainingServiceConfig{TrainInterval: 30 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("failures must not stop the service, Serve returned %v", err)
	}

	if got := trainer.getCalls(); got < 2 {
		t.Errorf("expected repeated scheduled runs, got %d", got)
	}
	trainer.mu.Lock()
	defer trainer.mu.Unlock()
	if trainer.lastQueried == 0 {
		t.Error("failed runs should look up the last good report")
	}
}

func TestTrainingService_Defaults(t *testing.T) {
	svc := NewTrainingService(&mockTrainer{}, TrainingServiceConfig{}, zerolog.Nop())
	if svc.config.TrainInterval != 24*time.Hour || svc.config.RunTimeout != 30*time.Minute {
		t.Errorf("unexpected defaults %+v", svc.config)
	}
	if svc.String() != "training-service" {
		t.Errorf("String() = %q", svc.String())
	}
}
