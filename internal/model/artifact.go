// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package model

import (
	"context"
	"fmt"

	"github.com/tomtom215/coffeecast/internal/forecast"
	"github.com/tomtom215/coffeecast/internal/model/storage"
)

// Artifact is a stored model loaded for serving, with the metadata it was
// saved with. It is never modified after LoadArtifact returns.
type Artifact struct {
	Model    *LinearModel
	Metadata storage.ModelMetadata
}

var _ forecast.Predictor = (*Artifact)(nil)

// Predict delegates to the loaded model.
func (a *Artifact) Predict(features []float64) (float64, error) {
	return a.Model.Predict(features)
}

// SaveArtifact stores m as the next version of name.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func SaveArtifact(ctx context.Context, store *storage.Store, name string, m *LinearModel, meta storage.ModelMetadata) (*storage.ModelMetadata, error) {
	if meta.FeatureNames == nil {
		meta.FeatureNames = m.FeatureNames
	}
	return store.Save(ctx, name, m, meta)
}

// LoadArtifact loads version of name (0 for the latest) and checks that
// the model matches the feature layout this build computes.
func LoadArtifact(ctx context.Context, store *storage.Store, name string, version int) (*Artifact, error) {
	var m LinearModel
	meta, err := store.Load(ctx, name, version, &m)
	if err != nil {
		return nil, err
	}
	if len(m.Coefficients) != forecast.NumFeatures {
		return nil, fmt.Errorf("%s v%d: %w", name, meta.Version, &ShapeError{Got: len(m.Coefficients), Want: forecast.NumFeatures})
	}
	for i, want := range forecast.FeatureNames {
		if i < len(m.FeatureNames) && m.FeatureNames[i] != want {
			return nil, fmt.Errorf("%s v%d: feature %d is %q, this build computes %q", name, meta.Version, i, m.FeatureNames[i], want)
		}
	}
	return &Artifact{Model: &m, Metadata: *meta}, nil
}
