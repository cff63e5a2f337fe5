// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/coffeecast/internal/metrics"
)

// Column is one column of a table to create.
type Column struct {
	Name string
	Type ColumnType
}

// TableSpec describes a table to create.
type TableSpec struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the column names in order.
func (s TableSpec) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// CreateTableSQL renders the CREATE TABLE IF NOT EXISTS statement for spec.
func (d Dialect) CreateTableSQL(spec TableSpec) (string, error) {
	if spec.Name == "" || len(spec.Columns) == 0 {
		return "", fmt.Errorf("%w: %q has %d columns", ErrInvalidTable, spec.Name, len(spec.Columns))
	}
	defs := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		if c.Name == "" {
			return "", fmt.Errorf("%w: column %d of %q has no name", ErrInvalidTable, i, spec.Name)
		}
		defs[i] = d.Quote(c.Name) + " " + d.TypeName(c.Type)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.Quote(spec.Name), strings.Join(defs, ", ")), nil
}

// CreateTable creates spec if it does not exist yet.
func (db *DB) CreateTable(ctx context.Context, spec TableSpec) error {
	query, err := db.dialect.CreateTableSQL(spec)
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, query)
	metrics.RecordDBQuery("create_table", spec.Name, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("create table %s: %w", spec.Name, err)
	}
	return nil
}
