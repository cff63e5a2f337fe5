// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package forecast

import (
	"errors"
	"fmt"
)

// ErrInvalidHorizon is returned for a horizon below 1.
var ErrInvalidHorizon = errors.New("forecast horizon must be at least 1")

// EmptyHistoryError is returned when features or a forecast are requested
// for a country without a single observation.
type EmptyHistoryError struct {
	CountryID int64
}

func (e *EmptyHistoryError) Error() string {
	if e.CountryID == 0 {
		return "empty production history"
	}
	return fmt.Sprintf("empty production history for country %d", e.CountryID)
}
