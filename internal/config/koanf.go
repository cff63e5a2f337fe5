// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/coffeecast/config.yaml",
	"/etc/coffeecast/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultReservedColumns are production-table columns that never hold a
// year period.
var DefaultReservedColumns = []string{"id", "country_id", "coffee_type", "total"}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Driver:    "duckdb",
			Path:      "data/coffee.duckdb",
			Host:      "localhost",
			Name:      "coffee",
			MaxMemory: "1GB",
		},
		Import: ImportConfig{
			WorkbookPath: "data/clean/Dataset.xlsx",
			BatchSize:    500,
		},
		Export: ExportConfig{
			OutputDir:       "data/predictionData",
			ProductionTable: "production",
			CountriesTable:  "countries",
			IDColumns:       []string{"country_id"},
			ReservedColumns: append([]string(nil), DefaultReservedColumns...),
		},
		Model: ModelConfig{
			StoreDir:     "models",
			Name:         "linear_regression_advanced",
			HoldoutYears: 3,
			KeepVersions: 5,
		},
		Training: TrainingConfig{
			Enabled:  false,
			Interval: 24 * time.Hour,
		},
		Forecast: ForecastConfig{
			DefaultHorizon: 5,
			MaxHorizon:     50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf layers defaults, the optional config file and environment
// variables, then unmarshals and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"export.id_columns",
	"export.reserved_columns",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings lists every environment variable the loader honors. Unlisted
// variables are ignored.
var envMappings = map[string]string{
	"http_host":            "server.host",
	"http_port":            "server.port",
	"http_timeout":         "server.timeout",
	"cors_origins":         "server.cors_origins",
	"rate_limit_reqs":      "server.rate_limit_reqs",
	"rate_limit_window":    "server.rate_limit_window",
	"disable_rate_limit":   "server.rate_limit_disabled",
	"db_driver":            "database.driver",
	"db_path":              "database.path",
	"duckdb_path":          "database.path",
	"db_dsn":               "database.dsn",
	"db_host":              "database.host",
	"db_port":              "database.port",
	"db_name":              "database.name",
	"db_user":              "database.user",
	"db_password":          "database.password",
	"db_ssl_mode":          "database.ssl_mode",
	"duckdb_max_memory":    "database.max_memory",
	"duckdb_threads":       "database.threads",
	"mysql_host":           "database.host",
	"mysql_db":             "database.name",
	"mysql_user":           "database.user",
	"mysql_password":       "database.password",
	"workbook_path":        "import.workbook_path",
	"import_batch_size":    "import.batch_size",
	"export_dir":           "export.output_dir",
	"production_table":     "export.production_table",
	"countries_table":      "export.countries_table",
	"id_columns":           "export.id_columns",
	"reserved_columns":     "export.reserved_columns",
	"model_dir":            "model.store_dir",
	"model_name":           "model.name",
	"holdout_years":        "model.holdout_years",
	"model_keep_versions":  "model.keep_versions",
	"model_refit_full":     "model.refit_full",
	"training_enabled":     "training.enabled",
	"train_on_startup":     "training.on_startup",
	"train_interval":       "training.interval",
	"forecast_horizon":     "forecast.default_horizon",
	"forecast_max_horizon": "forecast.max_horizon",
	"forecast_workers":     "forecast.workers",
	"log_level":            "logging.level",
	"log_format":           "logging.format",
	"log_caller":           "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path,
// or "" to skip it.
//
//	MYSQL_HOST   -> database.host
//	EXPORT_DIR   -> export.output_dir
//	HOLDOUT_YEARS -> model.holdout_years
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
