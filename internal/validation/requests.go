// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package validation

// ForecastRequest is the validated form of the horizon query parameter.
// MaxHorizon comes from configuration, not from the client.
type ForecastRequest struct {
	Horizon    int `json:"horizon" validate:"min=1,ltefield=MaxHorizon"`
	MaxHorizon int `json:"-" validate:"-"`
}
