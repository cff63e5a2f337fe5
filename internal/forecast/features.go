// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package forecast derives the six rolling/lag features from a production
// history and extends histories year by year with a fitted model, feeding
// each prediction back in as the newest observation.
//
// Nothing here performs I/O or keeps state between calls; per-country runs
// are independent and safe to execute concurrently.
package forecast

import (
	"gonum.org/v1/gonum/stat"
)

// Window is the number of trailing points the rolling statistics use.
const Window = 3

// NumFeatures is the length of FeatureVector.Slice.
const NumFeatures = 6

// FeatureNames lists the features in the order Slice returns them.
var FeatureNames = []string{
	"rolling_mean_3y",
	"rolling_std_3y",
	"production_lag1",
	"pct_change_1y",
	"mean_x_pct",
	"volatility_norm",
}

// FeatureVector is the model input derived from the trailing window of a
// history.
type FeatureVector struct {
	RollingMean3y  float64 `json:"rolling_mean_3y"`
	RollingStd3y   float64 `json:"rolling_std_3y"`
	ProductionLag1 float64 `json:"production_lag1"`
	PctChange1y    float64 `json:"pct_change_1y"`
	MeanXPct       float64 `json:"mean_x_pct"`
	VolatilityNorm float64 `json:"volatility_norm"`
}

// Slice returns the features in FeatureNames order.
func (f FeatureVector) Slice() []float64 {
	return []float64{
		f.RollingMean3y,
		f.RollingStd3y,
		f.ProductionLag1,
		f.PctChange1y,
		f.MeanXPct,
		f.VolatilityNorm,
	}
}

// BuildFeatures computes the feature vector at the end of history:
//
//	recent          = last min(3, len) values
//	rolling_mean_3y = mean(recent)
//	rolling_std_3y  = population std(recent)
//	production_lag1 = last value
//	pct_change_1y   = (recent[-1]-recent[-2])/recent[-2], 0 if fewer than 2 points or recent[-2] == 0
//	mean_x_pct      = rolling_mean_3y * pct_change_1y
//	volatility_norm = rolling_std_3y/(rolling_mean_3y+1), 0 unless rolling_mean_3y > 0
//
// history is read only. An empty history returns *EmptyHistoryError.
func BuildFeatures(history []float64) (FeatureVector, error) {
	n := len(history)
	if n == 0 {
		return FeatureVector{}, &EmptyHistoryError{}
	}

	recent := history[max(0, n-Window):]
	mean, std := stat.PopMeanStdDev(recent, nil)

	last := recent[len(recent)-1]
	pct := 0.0
	if len(recent) >= 2 {
		if prev := recent[len(recent)-2]; prev != 0 {
			pct = (last - prev) / prev
		}
	}

	volatility := 0.0
	if mean > 0 {
		volatility = std / (mean + 1)
	}

	return FeatureVector{
		RollingMean3y:  mean,
		RollingStd3y:   std,
		ProductionLag1: history[n-1],
		PctChange1y:    pct,
		MeanXPct:       mean * pct,
		VolatilityNorm: volatility,
	}, nil
}
