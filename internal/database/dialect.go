// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ColumnType is the storage class inferred for an imported column.
type ColumnType int

const (
	// TypeText is used for any column holding a non-numeric value.
	TypeText ColumnType = iota
	// TypeInt holds whole numbers up to 2e9 in magnitude.
	TypeInt
	// TypeBigInt holds whole numbers beyond TypeInt's range.
	TypeBigInt
	// TypeDouble holds any column with a fractional value.
	TypeDouble
)

// String returns the generic SQL name of the type.
func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeBigInt:
		return "BIGINT"
	case TypeDouble:
		return "DOUBLE"
	default:
		return "VARCHAR(255)"
	}
}

// Dialect carries the per-driver SQL differences.
type Dialect struct {
	Driver string
	quote  string
}

func init() {
	sqlx.BindDriver("duckdb", sqlx.QUESTION)
}

// DialectFor returns the dialect of a registered driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "duckdb", "sqlite3", "postgres":
		return Dialect{Driver: driver, quote: `"`}, nil
	case "mysql":
		return Dialect{Driver: driver, quote: "`"}, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Quote returns ident as a quoted identifier, doubling embedded quotes.
func (d Dialect) Quote(ident string) string {
	return d.quote + strings.ReplaceAll(ident, d.quote, d.quote+d.quote) + d.quote
}

// TypeName returns the column type as this driver spells it.
func (d Dialect) TypeName(t ColumnType) string {
	switch t {
	case TypeInt:
		if d.Driver == "mysql" {
			return "INT"
		}
		return "INTEGER"
	case TypeBigInt:
		return "BIGINT"
	case TypeDouble:
		switch d.Driver {
		case "postgres":
			return "DOUBLE PRECISION"
		case "sqlite3":
			return "REAL"
		default:
			return "DOUBLE"
		}
	default:
		if d.Driver == "sqlite3" {
			return "TEXT"
		}
		return "VARCHAR(255)"
	}
}

// maxBindParams bounds the placeholders in one statement. SQLite and
// Postgres both reject statements with more than 32766 / 65535.
const maxBindParams = 30000
