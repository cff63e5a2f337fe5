// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package spreadsheet

import (
	"time"
)

// SheetStats describes one imported sheet.
type SheetStats struct {
	Sheet   string `json:"sheet"`
	Table   string `json:"table"`
	Columns int    `json:"columns"`

	// Rows is the number of rows inserted.
	Rows int64 `json:"rows"`

	// Skipped counts blank rows.
	Skipped int64 `json:"skipped"`
}

// Stats holds statistics about an import operation.
type Stats struct {
	Workbook string       `json:"workbook"`
	Sheets   []SheetStats `json:"sheets"`

	// Rows is the total number of rows inserted across sheets.
	Rows    int64 `json:"rows"`
	Skipped int64 `json:"skipped"`

	// StartTime is when the import started.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the import completed (zero if still running).
	EndTime time.Time `json:"end_time"`
}

// Duration returns the duration of the import operation.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RowsPerSecond returns the import rate.
func (s *Stats) RowsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Rows) / duration
}

func (s *Stats) add(sheet SheetStats) {
	s.Sheets = append(s.Sheets, sheet)
	s.Rows += sheet.Rows
	s.Skipped += sheet.Skipped
}
