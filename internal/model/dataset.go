// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package model

import (
	"sort"

	"github.com/tomtom215/coffeecast/internal/forecast"
	"github.com/tomtom215/coffeecast/internal/production"
)

// Sample pairs the features at one point of a history with the production
// observed at the next point. Year is the year of the target.
type Sample struct {
	CountryID int64
	Year      int
	Features  forecast.FeatureVector
	Target    float64
}

// BuildDataset turns every consecutive pair of observations into a sample,
// pooled across countries. Samples are ordered by country id then year.
func BuildDataset(histories map[int64]production.CountryHistory) []Sample {
	ids := make([]int64, 0, len(histories))
	for id := range histories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var samples []Sample
	for _, id := range ids {
		h := histories[id]
		values := h.Values()
		for t := 0; t+1 < len(values); t++ {
			features, err := forecast.BuildFeatures(values[:t+1])
			if err != nil {
				continue
			}
			samples = append(samples, Sample{
				CountryID: id,
				Year:      h.Records[t+1].Year,
				Features:  features,
				Target:    values[t+1],
			})
		}
	}
	return samples
}

// SplitHoldout holds out the last holdoutYears target years:
// cutoff = max year - holdoutYears + 1, train has Year < cutoff and test
// has Year >= cutoff.
func SplitHoldout(samples []Sample, holdoutYears int) (train, test []Sample, cutoff int) {
	if len(samples) == 0 {
		return nil, nil, 0
	}
	maxYear := samples[0].Year
	for _, s := range samples[1:] {
		if s.Year > maxYear {
			maxYear = s.Year
		}
	}
	cutoff = maxYear - holdoutYears + 1
	for _, s := range samples {
		if s.Year < cutoff {
			train = append(train, s)
		} else {
			test = append(test, s)
		}
	}
	return train, test, cutoff
}
