// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/coffeecast/internal/database"
)

// bigIntThreshold is the magnitude above which integer columns become
// BIGINT.
const bigIntThreshold = 2_000_000_000

// maxTextLength matches VARCHAR(255).
const maxTextLength = 255

var nameReplacer = strings.NewReplacer(" ", "_", "-", "_")

// SanitizeName replaces spaces and dashes with underscores.
func SanitizeName(name string) string {
	return nameReplacer.Replace(name)
}

// sanitizeHeader sanitizes every header cell, naming blank cells
// column_N (1-based) and suffixing repeats with the first free _2, _3, ...
// Names are unique case-insensitively.
func sanitizeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	next := make(map[string]int, len(header))
	for i, h := range header {
		name := SanitizeName(strings.TrimSpace(h))
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		key := strings.ToLower(name)
		if used[key] {
			n := next[key]
			if n < 2 {
				n = 2
			}
			candidate := fmt.Sprintf("%s_%d", name, n)
			for used[strings.ToLower(candidate)] {
				n++
				candidate = fmt.Sprintf("%s_%d", name, n)
			}
			next[key] = n + 1
			name = candidate
		}
		used[strings.ToLower(name)] = true
		out[i] = name
	}
	return out
}

// InferColumnType picks the narrowest type holding every non-empty value.
// A column with no values at all is text.
func InferColumnType(values []string) database.ColumnType {
	sawValue := false
	allInts := true
	allNumbers := true
	var maxAbs float64

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		sawValue = true

		if allInts {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				maxAbs = math.Max(maxAbs, math.Abs(float64(n)))
				continue
			}
			allInts = false
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			allNumbers = false
			break
		}
	}

	switch {
	case !sawValue || !allNumbers:
		return database.TypeText
	case allInts && maxAbs > bigIntThreshold:
		return database.TypeBigInt
	case allInts:
		return database.TypeInt
	default:
		return database.TypeDouble
	}
}

// convertCell turns a raw cell into the value stored for a column of type
// t. Empty cells become nil.
func convertCell(raw string, t database.ColumnType) any {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	switch t {
	case database.TypeInt, database.TypeBigInt:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	case database.TypeDouble:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return truncate(raw, maxTextLength)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
