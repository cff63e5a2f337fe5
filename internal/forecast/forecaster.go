// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package forecast

import (
	"fmt"

	"github.com/tomtom215/coffeecast/internal/production"
)

// Predictor maps a feature vector (FeatureNames order) to a production
// value. Implementations must be deterministic and must not change state
// across calls.
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(features []float64) (float64, error)

// Predict calls f.
func (f PredictorFunc) Predict(features []float64) (float64, error) {
	return f(features)
}

// Point is one forecast year. Clamped marks a step whose raw prediction
// was negative and was replaced by the rolling mean.
type Point struct {
	Year                int     `json:"year"`
	PredictedProduction float64 `json:"predicted_production"`
	Clamped             bool    `json:"clamped,omitempty"`
}

// Series is a forecast in ascending year order.
type Series []Point

// ClampedSteps counts the clamped points.
func (s Series) ClampedSteps() int {
	n := 0
	for _, p := range s {
		if p.Clamped {
			n++
		}
	}
	return n
}

// buffer is the growable production list the forecast folds over. It owns
// its backing array; the caller's history is copied in.
type buffer []float64

func newBuffer(history []float64, extra int) buffer {
	b := make(buffer, len(history), len(history)+extra)
	copy(b, history)
	return b
}

// step predicts the value following b and returns the extended buffer.
func (b buffer) step(year int, model Predictor) (buffer, Point, error) {
	features, err := BuildFeatures(b)
	if err != nil {
		return b, Point{}, err
	}

	raw, err := model.Predict(features.Slice())
	if err != nil {
		return b, Point{}, fmt.Errorf("predict year %d: %w", year, err)
	}

	point := Point{Year: year, PredictedProduction: raw}
	if raw < 0 {
		point.PredictedProduction = features.RollingMean3y
		point.Clamped = true
	}
	return append(b, point.PredictedProduction), point, nil
}

// Forecast extends history by horizon years. The returned series has
// exactly horizon points for years lastYear+1 through lastYear+horizon,
// none of them negative. history is not modified.
func Forecast(history []float64, lastYear int, model Predictor, horizon int) (Series, error) {
	if len(history) == 0 {
		return nil, &EmptyHistoryError{}
	}
	if horizon < 1 {
		return nil, ErrInvalidHorizon
	}

	buf := newBuffer(history, horizon)
	series := make(Series, 0, horizon)
	for i := 1; i <= horizon; i++ {
		var point Point
		var err error
		buf, point, err = buf.step(lastYear+i, model)
		if err != nil {
			return nil, err
		}
		series = append(series, point)
	}
	return series, nil
}

// ForecastHistory forecasts one country's observed history.
func ForecastHistory(h production.CountryHistory, model Predictor, horizon int) (Series, error) {
	if h.Len() == 0 {
		return nil, &EmptyHistoryError{CountryID: h.CountryID}
	}
	series, err := Forecast(h.Values(), h.LastYear(), model, horizon)
	if err != nil {
		return nil, fmt.Errorf("country %d: %w", h.CountryID, err)
	}
	return series, nil
}
