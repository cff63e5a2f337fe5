// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package database

import (
	"errors"
	"io"
)

var (
	// ErrUnsupportedDriver is returned by New for a driver with no dialect.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrColumnMismatch is returned when a row does not match the column list.
	ErrColumnMismatch = errors.New("row length does not match columns")

	// ErrInvalidTable is returned for a table spec with no name or columns.
	ErrInvalidTable = errors.New("invalid table spec")
)

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() //nolint:errcheck // cleanup is best-effort
	}
}
