// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

// Package config loads Coffeecast configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of
// precedence (environment wins).
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config is the root configuration shared by every command.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Import   ImportConfig   `koanf:"import"`
	Export   ExportConfig   `koanf:"export"`
	Model    ModelConfig    `koanf:"model"`
	Training TrainingConfig `koanf:"training"`
	Forecast ForecastConfig `koanf:"forecast"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	Host              string        `koanf:"host"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DatabaseConfig selects and addresses the relational store the workbook
// is loaded into and the exporter reads from.
//
// Driver is one of duckdb (embedded file at Path), sqlite3 (embedded file
// at Path), postgres or mysql. For the server drivers either DSN is given
// verbatim or it is assembled from Host, Port, Name, User and Password;
// MYSQL_HOST, MYSQL_DB, MYSQL_USER and MYSQL_PASSWORD map onto those fields.
type DatabaseConfig struct {
	Driver    string `koanf:"driver" validate:"required,oneof=duckdb sqlite3 postgres mysql"`
	Path      string `koanf:"path"`
	DSN       string `koanf:"dsn"`
	Host      string `koanf:"host"`
	Port      int    `koanf:"port" validate:"min=0,max=65535"`
	Name      string `koanf:"name"`
	User      string `koanf:"user"`
	Password  string `koanf:"password"`
	SSLMode   string `koanf:"ssl_mode"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"min=0"`
}

// ImportConfig controls the spreadsheet loader.
type ImportConfig struct {
	WorkbookPath string `koanf:"workbook_path"`
	BatchSize    int    `koanf:"batch_size" validate:"min=1,max=100000"`
}

// ExportConfig controls the CSV exporter. The server reads the same
// OutputDir.
type ExportConfig struct {
	OutputDir       string   `koanf:"output_dir" validate:"required"`
	ProductionTable string   `koanf:"production_table" validate:"required,sqlident"`
	CountriesTable  string   `koanf:"countries_table" validate:"required,sqlident"`
	IDColumns       []string `koanf:"id_columns" validate:"min=1"`
	ReservedColumns []string `koanf:"reserved_columns"`
}

// ModelConfig controls where model artifacts live and how they are
// evaluated.
type ModelConfig struct {
	StoreDir     string `koanf:"store_dir" validate:"required"`
	Name         string `koanf:"name" validate:"required,sqlident"`
	HoldoutYears int    `koanf:"holdout_years" validate:"min=1,max=50"`
	KeepVersions int    `koanf:"keep_versions" validate:"min=1"`
	RefitFull    bool   `koanf:"refit_full"`
}

// TrainingConfig controls the supervised training service in the server.
// Artifacts it writes are picked up by the next server start; the model
// handle of a running server never changes.
type TrainingConfig struct {
	Enabled   bool          `koanf:"enabled"`
	OnStartup bool          `koanf:"on_startup"`
	Interval  time.Duration `koanf:"interval"`
}

// ForecastConfig bounds forecast requests.
type ForecastConfig struct {
	DefaultHorizon int `koanf:"default_horizon" validate:"min=1"`
	MaxHorizon     int `koanf:"max_horizon" validate:"min=1,max=200"`
	Workers        int `koanf:"workers" validate:"min=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads the layered configuration and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// ConnectionString returns the driver-specific data source name.
func (d *DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}

	switch d.Driver {
	case "postgres":
		port := d.Port
		if port == 0 {
			port = 5432
		}
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			d.Host, port, d.Name, d.User, d.Password, sslMode)
	case "mysql":
		port := d.Port
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
			d.User, d.Password, net.JoinHostPort(d.Host, strconv.Itoa(port)), d.Name)
	default:
		return d.Path
	}
}
