package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sentinel")
	}

	v.SetEnvPrefix("SENTINEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file, run on defaults and env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "resource-sentinel")
	v.SetDefault("app.mode", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.shutdown_timeout", "30s")

	// Storage defaults
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("storage.high_water_mark", 2000)
	v.SetDefault("storage.retain_count", 1000)
	v.SetDefault("storage.postgres.host", "localhost")
	v.SetDefault("storage.postgres.port", 5432)
	v.SetDefault("storage.postgres.name", "sentinel")
	v.SetDefault("storage.postgres.user", "sentinel")
	v.SetDefault("storage.postgres.password", "password")
	v.SetDefault("storage.postgres.max_connections", 5)
	v.SetDefault("storage.postgres.ssl_mode", "disable")

	// Collector defaults
	v.SetDefault("collector.type", "system")
	v.SetDefault("collector.disk_path", "/")
	v.SetDefault("collector.interval", "1m")
	v.SetDefault("collector.timeout", "10s")
	v.SetDefault("collector.retry_attempts", 3)
	v.SetDefault("collector.circuit_breaker.max_failures", 5)
	v.SetDefault("collector.circuit_breaker.cooldown", "30s")

	// Monitor defaults
	v.SetDefault("monitor.enabled", true)
	v.SetDefault("monitor.trend_window", "24h")
	v.SetDefault("monitor.exhaustion_horizon_hours", 168.0)
	v.SetDefault("monitor.resources.cpu.alert_threshold", 80.0)
	v.SetDefault("monitor.resources.cpu.critical_threshold", 95.0)
	v.SetDefault("monitor.resources.cpu.forecast_threshold", 90.0)
	v.SetDefault("monitor.resources.cpu.unit", "%")
	v.SetDefault("monitor.resources.memory.alert_threshold", 85.0)
	v.SetDefault("monitor.resources.memory.critical_threshold", 95.0)
	v.SetDefault("monitor.resources.memory.forecast_threshold", 90.0)
	v.SetDefault("monitor.resources.memory.unit", "%")
	v.SetDefault("monitor.resources.disk.alert_threshold", 90.0)
	v.SetDefault("monitor.resources.disk.critical_threshold", 95.0)
	v.SetDefault("monitor.resources.disk.forecast_threshold", 90.0)
	v.SetDefault("monitor.resources.disk.unit", "%")
	v.SetDefault("monitor.resources.load.alert_threshold", 8.0)
	v.SetDefault("monitor.resources.load.critical_threshold", 16.0)
	v.SetDefault("monitor.resources.load.unit", "")

	// Trend defaults
	v.SetDefault("trend.increasing_slope", 0.1)
	v.SetDefault("trend.decreasing_slope", -0.1)

	// Forecast defaults
	v.SetDefault("forecast.min_samples", 10)
	v.SetDefault("forecast.window", 168)
	v.SetDefault("forecast.hours_per_sample", 1.0)
	v.SetDefault("forecast.negligible_slope", 0.01)

	// Optimizer defaults
	v.SetDefault("optimizer.critical_usage", 90.0)
	v.SetDefault("optimizer.high_usage", 80.0)
	v.SetDefault("optimizer.volatility_limit", 15.0)
	v.SetDefault("optimizer.volatility_usage_floor", 50.0)
	v.SetDefault("optimizer.exhaustion_horizon_hours", 168.0)
	v.SetDefault("optimizer.stopped_container_limit", 10)

	// Alert defaults
	v.SetDefault("alerts.retention_hours", 24)

	// API defaults
	v.SetDefault("api.enabled", true)
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.read_timeout", "15s")
	v.SetDefault("api.write_timeout", "15s")
	v.SetDefault("api.idle_timeout", "60s")
	v.SetDefault("api.jwt_secret", "change-me-in-production")
	v.SetDefault("api.jwt_duration", "24h")
	v.SetDefault("api.admin_username", "admin")
	v.SetDefault("api.default_limit", 100)
	v.SetDefault("api.max_limit", 1000)

	// WebSocket defaults
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_timeout", "60s")
	v.SetDefault("websocket.write_timeout", "10s")
	v.SetDefault("websocket.max_message_size", 512)
	v.SetDefault("websocket.broadcast_buffer", 256)
	v.SetDefault("websocket.client_buffer", 256)

	// Events defaults
	v.SetDefault("events.buffer_size", 100)
}
