// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/database"
	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/metrics"
)

// ErrImportInProgress is returned when Import is called while another
// import on the same Importer is running.
var ErrImportInProgress = errors.New("import already in progress")

// Store is the subset of the relational store the importer writes to.
type Store interface {
	CreateTable(ctx context.Context, spec database.TableSpec) error
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any, batchSize int) (int, error)
}

// Importer loads workbooks into a Store.
type Importer struct {
	cfg   *config.ImportConfig
	store Store

	mu      sync.Mutex
	running bool
}

// NewImporter creates a workbook importer.
func NewImporter(cfg *config.ImportConfig, store Store) *Importer {
	return &Importer{cfg: cfg, store: store}
}

// Import loads every sheet of the workbook at path. An empty path uses the
// configured workbook. Sheets are imported in workbook order and the first
// failing sheet stops the import; sheets already committed stay.
func (i *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	if path == "" {
		path = i.cfg.WorkbookPath
	}

	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return nil, ErrImportInProgress
	}
	i.running = true
	i.mu.Unlock()

	stats := &Stats{Workbook: path, StartTime: time.Now()}
	defer func() {
		i.mu.Lock()
		i.running = false
		i.mu.Unlock()
		stats.EndTime = time.Now()
		metrics.ImportDuration.Observe(stats.Duration().Seconds())
	}()

	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer closeQuietly(f)

	logging.Info().Str("workbook", path).Strs("sheets", f.GetSheetList()).Msg("Starting workbook import")

	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sheetStats, err := i.importSheet(ctx, f, name)
		if err != nil {
			return nil, err
		}

		stats.add(*sheetStats)
	}

	logging.Info().
		Str("workbook", path).
		Int("sheets", len(stats.Sheets)).
		Int64("rows", stats.Rows).
		Int64("skipped", stats.Skipped).
		Dur("duration", time.Since(stats.StartTime)).
		Msg("Workbook import completed")

	return stats, nil
}

func (i *Importer) importSheet(ctx context.Context, f *excelize.File, name string) (*SheetStats, error) {
	sheet, err := readSheet(f, name)
	if err != nil {
		return nil, err
	}

	table := SanitizeName(name)
	result := &SheetStats{Sheet: name, Table: table, Columns: len(sheet.Header), Skipped: int64(sheet.Blank)}
	if len(sheet.Header) == 0 {
		logging.Warn().Str("sheet", name).Msg("Sheet has no header row, skipping")
		return result, nil
	}

	spec := database.TableSpec{Name: table, Columns: make([]database.Column, len(sheet.Header))}
	for c, header := range sheet.Header {
		spec.Columns[c] = database.Column{Name: header, Type: InferColumnType(sheet.column(c))}
	}
	if err := i.store.CreateTable(ctx, spec); err != nil {
		return nil, fmt.Errorf("sheet %s: %w", name, err)
	}

	rows := make([][]any, len(sheet.Rows))
	for r, raw := range sheet.Rows {
		row := make([]any, len(spec.Columns))
		for c, col := range spec.Columns {
			row[c] = convertCell(raw[c], col.Type)
		}
		rows[r] = row
	}

	inserted, err := i.store.InsertRows(ctx, table, spec.ColumnNames(), rows, i.cfg.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", name, err)
	}
	result.Rows = int64(inserted)
	metrics.RecordImportRows(table, inserted, sheet.Blank)

	logging.Info().
		Str("sheet", name).
		Str("table", table).
		Int("columns", len(spec.Columns)).
		Int("rows", inserted).
		Msg("Sheet imported")
	return result, nil
}
