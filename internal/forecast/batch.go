// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package forecast

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/coffeecast/internal/production"
)

// ForecastAll forecasts every history concurrently with at most workers
// goroutines (NumCPU when workers < 1). The first failure cancels the
// remaining work and is returned.
func ForecastAll(ctx context.Context, histories map[int64]production.CountryHistory, model Predictor, horizon, workers int) (map[int64]Series, error) {
	if horizon < 1 {
		return nil, ErrInvalidHorizon
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	results := make(map[int64]Series, len(histories))

	for id, h := range histories {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			series, err := ForecastHistory(h, model, horizon)
			if err != nil {
				return err
			}
			mu.Lock()
			results[id] = series
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
