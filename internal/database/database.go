// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tomtom215/coffeecast/internal/config"
	"github.com/tomtom215/coffeecast/internal/logging"
	"github.com/tomtom215/coffeecast/internal/metrics"
)

// DB wraps the sqlx connection pool for the configured driver.
type DB struct {
	conn    *sqlx.DB
	cfg     *config.DatabaseConfig
	dialect Dialect
}

// New opens the configured store and verifies it answers a ping.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.ConnectionString()
	if embedded(cfg.Driver) && cfg.Path != "" && cfg.Path != ":memory:" {
		// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}
	if cfg.Driver == "duckdb" && cfg.DSN == "" {
		dsn = duckDBConnString(cfg)
	}

	conn, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg, dialect: dialect}
	db.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Str("path", cfg.Path).
		Str("host", cfg.Host).
		Msg("Database connection established")
	return db, nil
}

func embedded(driver string) bool {
	return driver == "duckdb" || driver == "sqlite3"
}

func duckDBConnString(cfg *config.DatabaseConfig) string {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d", path, threads)
	if cfg.MaxMemory != "" {
		connStr += "&max_memory=" + cfg.MaxMemory
	}
	return connStr
}

// configureConnectionPool sizes the pool per driver. sqlite3 gets a single
// connection so an in-memory database is shared by every statement.
func (db *DB) configureConnectionPool() {
	switch db.cfg.Driver {
	case "sqlite3":
		db.conn.SetMaxOpenConns(1)
	case "duckdb":
		db.conn.SetMaxOpenConns(runtime.NumCPU())
		db.conn.SetMaxIdleConns(2)
	default:
		db.conn.SetMaxOpenConns(10)
		db.conn.SetMaxIdleConns(2)
		db.conn.SetConnMaxLifetime(time.Hour)
		db.conn.SetConnMaxIdleTime(5 * time.Minute)
	}
}

// Conn returns the underlying sqlx handle.
func (db *DB) Conn() *sqlx.DB {
	return db.conn
}

// Dialect returns the SQL dialect of the open driver.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	start := time.Now()
	err := db.conn.PingContext(ctx)
	metrics.RecordDBQuery("ping", "", time.Since(start), err)
	return err
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}
