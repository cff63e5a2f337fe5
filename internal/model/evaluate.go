// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package model

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/coffeecast/internal/forecast"
)

// Metrics summarizes prediction error over a set of samples.
type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
	N    int     `json:"n"`
}

// Evaluate scores p on samples. R2 is 0 when the targets have no variance.
// An empty sample set yields zero Metrics.
func Evaluate(p forecast.Predictor, samples []Sample) (Metrics, error) {
	if len(samples) == 0 {
		return Metrics{}, nil
	}

	targets := make([]float64, len(samples))
	for i, s := range samples {
		targets[i] = s.Target
	}
	mean := stat.Mean(targets, nil)

	var absSum, sqSum, totSum float64
	for i, s := range samples {
		pred, err := p.Predict(s.Features.Slice())
		if err != nil {
			return Metrics{}, err
		}
		residual := targets[i] - pred
		absSum += math.Abs(residual)
		sqSum += residual * residual
		totSum += (targets[i] - mean) * (targets[i] - mean)
	}

	n := float64(len(samples))
	m := Metrics{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
		N:    len(samples),
	}
	if totSum > 0 {
		m.R2 = 1 - sqSum/totSum
	}
	return m, nil
}
