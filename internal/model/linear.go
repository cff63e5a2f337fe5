// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package model fits and evaluates the pooled linear regression that maps
// the forecast feature vector to next-year production.
//
// One global intercept and one coefficient per feature are estimated by
// ordinary least squares across every country at once; there are no
// per-country terms. A fitted LinearModel is a plain value: Predict reads
// it and never writes, so one instance can serve concurrent requests.
package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/coffeecast/internal/forecast"
)

var (
	// ErrInsufficientSamples is returned when there are fewer samples than
	// parameters to estimate.
	ErrInsufficientSamples = errors.New("not enough training samples")

	// ErrNotFitted is returned by Predict on a zero LinearModel.
	ErrNotFitted = errors.New("model has not been fitted")
)

// ShapeError reports a feature vector of the wrong length.
type ShapeError struct {
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("feature vector has %d values, model expects %d", e.Got, e.Want)
}

// LinearModel is y = Intercept + sum(Coefficients[i] * x[i]).
type LinearModel struct {
	Intercept    float64
	Coefficients []float64
	FeatureNames []string
}

var _ forecast.Predictor = (*LinearModel)(nil)

// Predict evaluates the model on one feature vector.
func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(m.Coefficients) == 0 {
		return 0, ErrNotFitted
	}
	if len(features) != len(m.Coefficients) {
		return 0, &ShapeError{Got: len(features), Want: len(m.Coefficients)}
	}
	y := m.Intercept
	for i, x := range features {
		y += m.Coefficients[i] * x
	}
	return y, nil
}

// Fit estimates a LinearModel from samples. The least-squares system is
// solved by QR; a rank-deficient design (constant or collinear features)
// falls back to the minimum-norm SVD solution.
func Fit(samples []Sample) (*LinearModel, error) {
	n := len(samples)
	p := forecast.NumFeatures + 1
	if n < p {
		return nil, fmt.Errorf("%w: have %d, need at least %d", ErrInsufficientSamples, n, p)
	}

	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i, s := range samples {
		x.Set(i, 0, 1)
		for j, v := range s.Features.Slice() {
			x.Set(i, j+1, v)
		}
		y.SetVec(i, s.Target)
	}

	beta, err := solveLeastSquares(x, y)
	if err != nil {
		return nil, err
	}

	coefficients := make([]float64, forecast.NumFeatures)
	for j := range coefficients {
		coefficients[j] = beta.AtVec(j + 1)
	}
	return &LinearModel{
		Intercept:    beta.AtVec(0),
		Coefficients: coefficients,
		FeatureNames: append([]string(nil), forecast.FeatureNames...),
	}, nil
}

func solveLeastSquares(x *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	var qr mat.QR
	qr.Factorize(x)

	var beta mat.VecDense
	err := qr.SolveVecTo(&beta, false, y)
	if err == nil {
		return &beta, nil
	}
	var cond mat.Condition
	if !errors.As(err, &cond) {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, errors.New("solve least squares: SVD factorization failed")
	}
	rank := svd.Rank(1e-12)
	if rank == 0 {
		return nil, errors.New("solve least squares: design matrix has rank 0")
	}
	var fallback mat.VecDense
	svd.SolveVecTo(&fallback, y, rank)
	return &fallback, nil
}
