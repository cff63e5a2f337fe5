// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is the raw content of one worksheet. Rows are padded to the header
// width; Blank counts the rows dropped because every cell was empty.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
	Blank  int
}

// readSheet reads name from f. The first row is the header.
func readSheet(f *excelize.File, name string) (*Sheet, error) {
	rows, err := f.Rows(name)
	if err != nil {
		return nil, fmt.Errorf("open sheet %s: %w", name, err)
	}
	defer closeQuietly(rows)

	sheet := &Sheet{Name: name}
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		if sheet.Header == nil {
			if isBlank(cells) {
				continue
			}
			sheet.Header = sanitizeHeader(trimTrailingBlank(cells))
			continue
		}
		if isBlank(cells) {
			sheet.Blank++
			continue
		}
		sheet.Rows = append(sheet.Rows, fitRow(cells, len(sheet.Header)))
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	return sheet, nil
}

// column returns the values of column i.
func (s *Sheet) column(i int) []string {
	out := make([]string, len(s.Rows))
	for r, row := range s.Rows {
		out[r] = row[i]
	}
	return out
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimTrailingBlank(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}

// fitRow pads or cuts cells to width. Cells beyond the header are dropped.
func fitRow(cells []string, width int) []string {
	row := make([]string, width)
	copy(row, cells)
	return row
}

type closer interface{ Close() error }

func closeQuietly(c closer) {
	if c != nil {
		_ = c.Close() //nolint:errcheck // cleanup is best-effort
	}
}
