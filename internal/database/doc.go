// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package database is the relational store behind the import and export
// jobs.
//
// # Overview
//
// The store holds one table per workbook sheet (production, countries, and
// whatever else the workbook carries). The importer writes those tables and
// the exporter reads the production table back as a production.WideTable
// plus the countries table as a production.CountryDirectory.
//
// # Drivers
//
// All access goes through sqlx so the same code runs against:
//   - duckdb (default): embedded file, parent directory created on open
//   - sqlite3: embedded file, single connection
//   - postgres: lib/pq
//   - mysql: go-sql-driver/mysql, the deployment the workbook loader was
//     first written against
//
// Dialect handles identifier quoting and column type names per driver.
// Placeholders are written as ? and rebound with sqlx for the driver.
//
// # Metrics
//
// Every statement is timed into metrics.DBQueryDuration, labelled by
// operation and table.
package database
