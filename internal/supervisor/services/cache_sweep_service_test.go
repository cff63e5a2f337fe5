// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingSweeper struct {
	sweeps atomic.Int32
}

func (c *countingSweeper) SweepChartCache() int {
	c.sweeps.Add(1)
	return 1
}

func TestCacheSweepService_SweepsOnTick(t *testing.T) {
	sweeper := &countingSweeper{}
	svc := NewCacheSweepService(sweeper, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve returned %v", err)
	}
	if got := sweeper.sweeps.Load(); got < 2 {
		t.Errorf("expected repeated sweeps, got %d", got)
	}
}

func TestCacheSweepService_Defaults(t *testing.T) {
	svc := NewCacheSweepService(&countingSweeper{}, 0, zerolog.Nop())
	if svc.interval != 10*time.Minute {
		t.Errorf("interval = %v", svc.interval)
	}
	if svc.String() != "cache-sweep-service" {
		t.Errorf("String() = %q", svc.String())
	}
}
