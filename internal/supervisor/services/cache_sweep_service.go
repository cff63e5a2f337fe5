// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheSweeper drops expired cache entries and reports how many went.
type CacheSweeper interface {
	SweepChartCache() int
}

// CacheSweepService periodically drops expired chart images.
type CacheSweepService struct {
	sweeper  CacheSweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheSweepService creates a sweep service. Default interval: 10m.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheSweepService(sweeper CacheSweeper, interval time.Duration, logger zerolog.Logger) *CacheSweepService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheSweepService{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With().Str("service", "cache-sweep").Logger(),
		name:     "cache-sweep-service",
	}
}

// Serve implements suture.Service.
func (s *CacheSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.sweeper.SweepChartCache(); removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("expired chart images dropped")
			}
		}
	}
}

// String returns the service name for logging.
func (s *CacheSweepService) String() string {
	return s.name
}
