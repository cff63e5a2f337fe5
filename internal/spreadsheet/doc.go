// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package spreadsheet loads every sheet of the source workbook into the
// relational store, one table per sheet.
//
// The first row of a sheet is its header. Column and table names have
// spaces and dashes replaced with underscores. Column types are inferred
// from the non-empty cells:
//
//	every value an integer, |max| <= 2e9  -> INT
//	every value an integer, |max| >  2e9  -> BIGINT
//	every value numeric                   -> DOUBLE
//	anything else                         -> VARCHAR(255)
//
// Empty cells are stored as NULL. Each sheet is written in its own
// transaction.
package spreadsheet
