package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/resource-sentinel/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "resource-sentinel", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Mode)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, 2000, cfg.Storage.HighWaterMark)
	assert.Equal(t, 1000, cfg.Storage.RetainCount)
	assert.Equal(t, time.Minute, cfg.Collector.Interval)
	assert.Equal(t, 5, cfg.Collector.CircuitBreaker.MaxFailures)
	assert.Equal(t, 168, cfg.Forecast.Window)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 24*time.Hour, cfg.API.JWTDuration)

	cpu, ok := cfg.Monitor.Resources["cpu"]
	require.True(t, ok)
	assert.Equal(t, 80.0, cpu.AlertThreshold)
	assert.Equal(t, 95.0, cpu.CriticalThreshold)

	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
app:
  mode: test
  log_level: debug
collector:
  type: mock
  interval: 5s
  timeout: 2s
api:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Mode)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "mock", cfg.Collector.Type)
	assert.Equal(t, 5*time.Second, cfg.Collector.Interval)
	assert.Equal(t, 9090, cfg.API.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, "resource-sentinel", cfg.App.Name)

	require.NoError(t, cfg.Validate())
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [not: closed"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func validConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "sentinel", Mode: "development", LogLevel: "info"},
		Storage: config.StorageConfig{
			Backend:       "file",
			DataDir:       "./data",
			HighWaterMark: 2000,
			RetainCount:   1000,
		},
		Collector: config.CollectorConfig{
			Type:     "mock",
			Interval: time.Minute,
			Timeout:  10 * time.Second,
		},
		Monitor: config.MonitorConfig{
			TrendWindow: 24 * time.Hour,
			Resources: map[string]config.ResourceConfig{
				"cpu": {AlertThreshold: 80, CriticalThreshold: 95},
			},
		},
		Trend:    config.TrendConfig{IncreasingSlope: 0.1, DecreasingSlope: -0.1},
		Forecast: config.ForecastConfig{MinSamples: 10, Window: 168, HoursPerSample: 1},
		API: config.APIConfig{
			Enabled:   true,
			Port:      8080,
			JWTSecret: "local-secret",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid config passes",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "missing app name",
			mutate:  func(c *config.Config) { c.App.Name = "" },
			wantErr: "app.name",
		},
		{
			name:    "bad mode",
			mutate:  func(c *config.Config) { c.App.Mode = "staging" },
			wantErr: "app.mode",
		},
		{
			name:    "bad log level",
			mutate:  func(c *config.Config) { c.App.LogLevel = "trace" },
			wantErr: "app.log_level",
		},
		{
			name:    "unknown storage backend",
			mutate:  func(c *config.Config) { c.Storage.Backend = "redis" },
			wantErr: "storage.backend",
		},
		{
			name: "file backend without data dir",
			mutate: func(c *config.Config) {
				c.Storage.DataDir = ""
			},
			wantErr: "storage.data_dir",
		},
		{
			name: "postgres backend without host",
			mutate: func(c *config.Config) {
				c.Storage.Backend = "postgres"
				c.Storage.Postgres = config.PostgresConfig{Port: 5432, Name: "sentinel"}
			},
			wantErr: "storage.postgres.host",
		},
		{
			name: "retain count above high water mark",
			mutate: func(c *config.Config) {
				c.Storage.RetainCount = c.Storage.HighWaterMark + 1
			},
			wantErr: "storage.retain_count",
		},
		{
			name:    "unknown collector type",
			mutate:  func(c *config.Config) { c.Collector.Type = "docker" },
			wantErr: "collector.type",
		},
		{
			name: "timeout not below interval",
			mutate: func(c *config.Config) {
				c.Collector.Timeout = c.Collector.Interval
			},
			wantErr: "collector.timeout",
		},
		{
			name: "critical below alert threshold",
			mutate: func(c *config.Config) {
				c.Monitor.Resources["cpu"] = config.ResourceConfig{AlertThreshold: 80, CriticalThreshold: 70}
			},
			wantErr: "critical_threshold",
		},
		{
			name:    "non-positive increasing slope",
			mutate:  func(c *config.Config) { c.Trend.IncreasingSlope = 0 },
			wantErr: "trend.increasing_slope",
		},
		{
			name:    "min samples too small",
			mutate:  func(c *config.Config) { c.Forecast.MinSamples = 1 },
			wantErr: "forecast.min_samples",
		},
		{
			name: "window below min samples",
			mutate: func(c *config.Config) {
				c.Forecast.Window = c.Forecast.MinSamples - 1
			},
			wantErr: "forecast.window",
		},
		{
			name:    "port out of range",
			mutate:  func(c *config.Config) { c.API.Port = 70000 },
			wantErr: "api.port",
		},
		{
			name: "default jwt secret in production",
			mutate: func(c *config.Config) {
				c.App.Mode = "production"
				c.API.JWTSecret = "change-me-in-production"
				c.API.AdminPasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
			},
			wantErr: "api.jwt_secret",
		},
		{
			name: "missing admin password hash in production",
			mutate: func(c *config.Config) {
				c.App.Mode = "production"
			},
			wantErr: "api.admin_password_hash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
