package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	// App validation
	if c.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}

	validModes := map[string]bool{"development": true, "production": true, "test": true}
	if !validModes[c.App.Mode] {
		errs = append(errs, errors.New("app.mode must be one of: development, production, test"))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.App.LogLevel] {
		errs = append(errs, errors.New("app.log_level must be one of: debug, info, warn, error"))
	}

	// Storage validation
	switch c.Storage.Backend {
	case "file":
		if c.Storage.DataDir == "" {
			errs = append(errs, errors.New("storage.data_dir is required for the file backend"))
		}
	case "postgres":
		if c.Storage.Postgres.Host == "" {
			errs = append(errs, errors.New("storage.postgres.host is required"))
		}
		if c.Storage.Postgres.Port <= 0 || c.Storage.Postgres.Port > 65535 {
			errs = append(errs, errors.New("storage.postgres.port must be between 1 and 65535"))
		}
		if c.Storage.Postgres.Name == "" {
			errs = append(errs, errors.New("storage.postgres.name is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be file or postgres, got %q", c.Storage.Backend))
	}

	if c.Storage.HighWaterMark <= 0 {
		errs = append(errs, errors.New("storage.high_water_mark must be positive"))
	}
	if c.Storage.RetainCount <= 0 || c.Storage.RetainCount > c.Storage.HighWaterMark {
		errs = append(errs, errors.New("storage.retain_count must be positive and not exceed high_water_mark"))
	}

	// Collector validation
	validCollectors := map[string]bool{"system": true, "mock": true}
	if !validCollectors[c.Collector.Type] {
		errs = append(errs, fmt.Errorf("collector.type must be system or mock, got %q", c.Collector.Type))
	}
	if c.Collector.Interval <= 0 {
		errs = append(errs, errors.New("collector.interval must be positive"))
	}
	if c.Collector.Timeout <= 0 {
		errs = append(errs, errors.New("collector.timeout must be positive"))
	}
	if c.Collector.Timeout >= c.Collector.Interval {
		errs = append(errs, errors.New("collector.timeout must be less than collector.interval"))
	}

	// Monitor validation
	if c.Monitor.TrendWindow <= 0 {
		errs = append(errs, errors.New("monitor.trend_window must be positive"))
	}
	for name, rc := range c.Monitor.Resources {
		if rc.AlertThreshold < 0 {
			errs = append(errs, fmt.Errorf("monitor.resources.%s.alert_threshold must not be negative", name))
		}
		if rc.CriticalThreshold > 0 && rc.CriticalThreshold < rc.AlertThreshold {
			errs = append(errs, fmt.Errorf("monitor.resources.%s.critical_threshold must be >= alert_threshold", name))
		}
	}

	// Trend validation
	if c.Trend.IncreasingSlope <= 0 {
		errs = append(errs, errors.New("trend.increasing_slope must be positive"))
	}
	if c.Trend.DecreasingSlope >= 0 {
		errs = append(errs, errors.New("trend.decreasing_slope must be negative"))
	}

	// Forecast validation
	if c.Forecast.MinSamples < 2 {
		errs = append(errs, errors.New("forecast.min_samples must be at least 2"))
	}
	if c.Forecast.Window < c.Forecast.MinSamples {
		errs = append(errs, errors.New("forecast.window must be >= forecast.min_samples"))
	}
	if c.Forecast.HoursPerSample <= 0 {
		errs = append(errs, errors.New("forecast.hours_per_sample must be positive"))
	}

	// API validation
	if c.API.Enabled {
		if c.API.Port <= 0 || c.API.Port > 65535 {
			errs = append(errs, errors.New("api.port must be between 1 and 65535"))
		}
		if c.App.Mode == "production" && c.API.JWTSecret == "change-me-in-production" {
			errs = append(errs, errors.New("api.jwt_secret must be changed in production"))
		}
		if c.App.Mode == "production" && c.API.AdminPasswordHash == "" {
			errs = append(errs, errors.New("api.admin_password_hash is required in production"))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
