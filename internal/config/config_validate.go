// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/coffeecast/internal/validation"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

// Validate checks struct tags first, then the cross-field rules tags
// cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateForecast(); err != nil {
		return err
	}
	if err := c.validateTraining(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "duckdb", "sqlite3":
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required when DB_DRIVER=%s", c.Database.Driver)
		}
	case "postgres", "mysql":
		if c.Database.DSN == "" && c.Database.Host == "" {
			return fmt.Errorf("DB_DSN or DB_HOST is required when DB_DRIVER=%s", c.Database.Driver)
		}
	}
	return nil
}

func (c *Config) validateForecast() error {
	if c.Forecast.DefaultHorizon > c.Forecast.MaxHorizon {
		return fmt.Errorf("FORECAST_HORIZON (%d) must not exceed FORECAST_MAX_HORIZON (%d)",
			c.Forecast.DefaultHorizon, c.Forecast.MaxHorizon)
	}
	return nil
}

func (c *Config) validateTraining() error {
	if c.Training.Enabled && c.Training.Interval < 0 {
		return fmt.Errorf("TRAIN_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
