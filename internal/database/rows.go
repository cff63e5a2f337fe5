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

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/metrics"
)

// DefaultBatchSize is the number of rows per INSERT when the caller passes
// zero.
const DefaultBatchSize = 500

// InsertRows inserts rows into table inside one transaction, batchSize rows
// per statement. Either every row is written or none is. It returns the
// number of rows inserted.
func (db *DB) InsertRows(ctx context.Context, table string, columns []string, rows [][]any, batchSize int) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("%w: no columns for %s", ErrColumnMismatch, table)
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("%w: row %d of %s has %d values, want %d", ErrColumnMismatch, i, table, len(row), len(columns))
		}
	}
	batchSize = db.effectiveBatchSize(batchSize, len(columns))

	start := time.Now()
	inserted, err := db.insertInTx(ctx, table, columns, rows, batchSize)
	metrics.RecordDBQuery("insert", table, time.Since(start), err)
	if err != nil {
		return 0, err
	}

	logging.Debug().
		Str("table", table).
		Int("rows", inserted).
		Int("batch_size", batchSize).
		Dur("duration", time.Since(start)).
		Msg("Inserted rows")
	return inserted, nil
}

func (db *DB) effectiveBatchSize(batchSize, columns int) int {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if limit := maxBindParams / columns; batchSize > limit {
		batchSize = max(1, limit)
	}
	return batchSize
}

func (db *DB) insertInTx(ctx context.Context, table string, columns []string, rows [][]any, batchSize int) (int, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after commit

	inserted := 0
	for offset := 0; offset < len(rows); offset += batchSize {
		end := min(offset+batchSize, len(rows))
		if err := db.insertBatch(ctx, tx, table, columns, rows[offset:end]); err != nil {
			return 0, fmt.Errorf("insert rows %d-%d into %s: %w", offset, end-1, table, err)
		}
		inserted += end - offset
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit %s: %w", table, err)
	}
	return inserted, nil
}

func (db *DB) insertBatch(ctx context.Context, tx *sqlx.Tx, table string, columns []string, batch [][]any) error {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = db.dialect.Quote(c)
	}
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(db.dialect.Quote(table))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(quoted, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(batch)*len(columns))
	for i, row := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(tuple)
		args = append(args, row...)
	}

	_, err := tx.ExecContext(ctx, tx.Rebind(sb.String()), args...)
	return err
}
