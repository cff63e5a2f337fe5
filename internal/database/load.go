// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/coffeecast/internal/metrics"
	"github.com/tomtom215/coffeecast/internal/production"
)

// LoadWideTable reads every row and column of table.
func (db *DB) LoadWideTable(ctx context.Context, table string) (production.WideTable, error) {
	start := time.Now()
	wide, err := db.loadWideTable(ctx, table)
	metrics.RecordDBQuery("select", table, time.Since(start), err)
	return wide, err
}

func (db *DB) loadWideTable(ctx context.Context, table string) (production.WideTable, error) {
	rows, err := db.conn.QueryxContext(ctx, "SELECT * FROM "+db.dialect.Quote(table))
	if err != nil {
		return production.WideTable{}, fmt.Errorf("query %s: %w", table, err)
	}
	defer closeQuietly(rows)

	columns, err := rows.Columns()
	if err != nil {
		return production.WideTable{}, fmt.Errorf("columns of %s: %w", table, err)
	}

	wide := production.WideTable{Columns: columns}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return production.WideTable{}, fmt.Errorf("scan %s: %w", table, err)
		}
		wide.Rows = append(wide.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return production.WideTable{}, fmt.Errorf("iterate %s: %w", table, err)
	}
	return wide, nil
}

type countryRow struct {
	ID   int64          `db:"id"`
	Name sql.NullString `db:"name"`
}

// LoadCountries reads the id -> name directory from table. The table must
// have id and name columns.
func (db *DB) LoadCountries(ctx context.Context, table string) (production.CountryDirectory, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s",
		db.dialect.Quote("id"), db.dialect.Quote("name"), db.dialect.Quote(table))

	start := time.Now()
	var countries []countryRow
	err := db.conn.SelectContext(ctx, &countries, query)
	metrics.RecordDBQuery("select", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load countries from %s: %w", table, err)
	}

	dir := make(production.CountryDirectory, len(countries))
	for _, c := range countries {
		dir[c.ID] = c.Name.String
	}
	return dir, nil
}
