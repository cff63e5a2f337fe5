// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package model

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/coffeecast/internal/forecast"
)

func TestEvaluate(t *testing.T) {
	samples := []Sample{
		{Features: forecast.FeatureVector{ProductionLag1: 1}, Target: 2},
		{Features: forecast.FeatureVector{ProductionLag1: 2}, Target: 4},
		{Features: forecast.FeatureVector{ProductionLag1: 3}, Target: 6},
	}
	// Predicts lag1 + 1, so residuals are 0, 1, 2.
	p := forecast.PredictorFunc(func(x []float64) (float64, error) { return x[2] + 1, nil })

	m, err := Evaluate(p, samples)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if m.N != 3 {
		t.Errorf("N = %d, want 3", m.N)
	}
	if math.Abs(m.MAE-1) > 1e-12 {
		t.Errorf("MAE = %v, want 1", m.MAE)
	}
	if math.Abs(m.RMSE-math.Sqrt(5.0/3.0)) > 1e-12 {
		t.Errorf("RMSE = %v", m.RMSE)
	}
	// ss_res = 5, ss_tot = 8.
	if math.Abs(m.R2-(1-5.0/8.0)) > 1e-12 {
		t.Errorf("R2 = %v", m.R2)
	}
}

func TestEvaluate_ZeroVariance(t *testing.T) {
	samples := []Sample{{Target: 3}, {Target: 3}}
	p := forecast.PredictorFunc(func([]float64) (float64, error) { return 3, nil })

	m, err := Evaluate(p, samples)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if m.R2 != 0 || m.MAE != 0 {
		t.Errorf("unexpected metrics %+v", m)
	}
}

func TestEvaluate_Empty(t *testing.T) {
	m, err := Evaluate(nil, nil)
	if err != nil || m != (Metrics{}) {
		t.Errorf("Evaluate(empty) = %+v, %v", m, err)
	}
}

func TestEvaluate_PredictError(t *testing.T) {
	boom := errors.New("boom")
	p := forecast.PredictorFunc(func([]float64) (float64, error) { return 0, boom })
	if _, err := Evaluate(p, []Sample{{Target: 1}}); !errors.Is(err, boom) {
		t.Errorf("expected predictor error, got %v", err)
	}
}
