package config

import "time"

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Collector CollectorConfig `mapstructure:"collector"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	Trend     TrendConfig     `mapstructure:"trend"`
	Forecast  ForecastConfig  `mapstructure:"forecast"`
	Optimizer OptimizerConfig `mapstructure:"optimizer"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
	API       APIConfig       `mapstructure:"api"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	Events    EventsConfig    `mapstructure:"events"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Mode            string        `mapstructure:"mode"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	Backend       string         `mapstructure:"backend"`
	DataDir       string         `mapstructure:"data_dir"`
	HighWaterMark int            `mapstructure:"high_water_mark"`
	RetainCount   int            `mapstructure:"retain_count"`
	Postgres      PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	MaxConnections  int           `mapstructure:"max_connections"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
}

type CollectorConfig struct {
	Type           string               `mapstructure:"type"`
	DiskPath       string               `mapstructure:"disk_path"`
	Interval       time.Duration        `mapstructure:"interval"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	RetryAttempts  int                  `mapstructure:"retry_attempts"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	MaxFailures int           `mapstructure:"max_failures"`
	Cooldown    time.Duration `mapstructure:"cooldown"`
}

type MonitorConfig struct {
	Enabled                bool                      `mapstructure:"enabled"`
	TrendWindow            time.Duration             `mapstructure:"trend_window"`
	ExhaustionHorizonHours float64                   `mapstructure:"exhaustion_horizon_hours"`
	Resources              map[string]ResourceConfig `mapstructure:"resources"`
}

// ResourceConfig is one tracked resource's thresholds and unit. The
// tracked set is enumerated here rather than discovered at runtime.
type ResourceConfig struct {
	AlertThreshold    float64 `mapstructure:"alert_threshold"`
	CriticalThreshold float64 `mapstructure:"critical_threshold"`
	ForecastThreshold float64 `mapstructure:"forecast_threshold"`
	Unit              string  `mapstructure:"unit"`
}

type TrendConfig struct {
	IncreasingSlope float64 `mapstructure:"increasing_slope"`
	DecreasingSlope float64 `mapstructure:"decreasing_slope"`
}

type ForecastConfig struct {
	MinSamples      int     `mapstructure:"min_samples"`
	Window          int     `mapstructure:"window"`
	HoursPerSample  float64 `mapstructure:"hours_per_sample"`
	NegligibleSlope float64 `mapstructure:"negligible_slope"`
}

type OptimizerConfig struct {
	CriticalUsage          float64 `mapstructure:"critical_usage"`
	HighUsage              float64 `mapstructure:"high_usage"`
	VolatilityLimit        float64 `mapstructure:"volatility_limit"`
	VolatilityUsageFloor   float64 `mapstructure:"volatility_usage_floor"`
	ExhaustionHorizonHours float64 `mapstructure:"exhaustion_horizon_hours"`
	StoppedContainerLimit  int     `mapstructure:"stopped_container_limit"`
}

type AlertsConfig struct {
	RetentionHours int `mapstructure:"retention_hours"`
}

type APIConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	JWTDuration       time.Duration `mapstructure:"jwt_duration"`
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	DefaultLimit      int           `mapstructure:"default_limit"`
	MaxLimit          int           `mapstructure:"max_limit"`
	CORS              CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type WebSocketConfig struct {
	PingInterval    time.Duration `mapstructure:"ping_interval"`
	PongTimeout     time.Duration `mapstructure:"pong_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxMessageSize  int64         `mapstructure:"max_message_size"`
	ReadBufferSize  int           `mapstructure:"read_buffer_size"`
	WriteBufferSize int           `mapstructure:"write_buffer_size"`
	BroadcastBuffer int           `mapstructure:"broadcast_buffer"`
	ClientBuffer    int           `mapstructure:"client_buffer"`
}

type EventsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}
