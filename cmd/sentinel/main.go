package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OldStager01/resource-sentinel/api"
	"github.com/OldStager01/resource-sentinel/internal/alerts"
	"github.com/OldStager01/resource-sentinel/internal/collector"
	"github.com/OldStager01/resource-sentinel/internal/events"
	"github.com/OldStager01/resource-sentinel/internal/forecast"
	"github.com/OldStager01/resource-sentinel/internal/logger"
	"github.com/OldStager01/resource-sentinel/internal/monitor"
	"github.com/OldStager01/resource-sentinel/internal/optimizer"
	"github.com/OldStager01/resource-sentinel/internal/resilience"
	"github.com/OldStager01/resource-sentinel/internal/storage"
	"github.com/OldStager01/resource-sentinel/internal/store"
	"github.com/OldStager01/resource-sentinel/internal/trend"
	"github.com/OldStager01/resource-sentinel/pkg/config"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Mode)
	logger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Mode)

	backend, err := newBackend(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer backend.Close()

	bus := events.NewEventBus(cfg.Events.BufferSize)
	defer bus.Close()

	publisher := events.NewPublisher(bus)

	eventLogger := events.NewEventLogger(bus.SubscribeAll())
	eventLogger.Start()
	defer eventLogger.Stop()

	col := newCollector(cfg)
	defer col.Close()

	sampleStore := store.New(backend, store.Config{
		HighWaterMark: cfg.Storage.HighWaterMark,
		RetainCount:   cfg.Storage.RetainCount,
	})
	registry := alerts.NewRegistry(backend)

	engine := monitor.New(monitor.Config{
		Interval:               cfg.Collector.Interval,
		TrendWindow:            cfg.Monitor.TrendWindow,
		ExhaustionHorizonHours: cfg.Monitor.ExhaustionHorizonHours,
		Resources:              resourceConfigs(cfg),
	}, monitor.Deps{
		Store:    sampleStore,
		Registry: registry,
		Calculator: trend.NewCalculator(trend.Config{
			IncreasingSlope: cfg.Trend.IncreasingSlope,
			DecreasingSlope: cfg.Trend.DecreasingSlope,
		}),
		Forecaster: forecast.New(forecast.Config{
			MinSamples:      cfg.Forecast.MinSamples,
			Window:          cfg.Forecast.Window,
			HoursPerSample:  cfg.Forecast.HoursPerSample,
			NegligibleSlope: cfg.Forecast.NegligibleSlope,
		}),
		Optimizer: optimizer.New(optimizer.Config{
			CriticalUsage:          cfg.Optimizer.CriticalUsage,
			HighUsage:              cfg.Optimizer.HighUsage,
			VolatilityLimit:        cfg.Optimizer.VolatilityLimit,
			VolatilityUsageFloor:   cfg.Optimizer.VolatilityUsageFloor,
			ExhaustionHorizonHours: cfg.Optimizer.ExhaustionHorizonHours,
			StoppedContainerLimit:  cfg.Optimizer.StoppedContainerLimit,
		}),
		Collector:  col,
		Containers: &collector.StaticContainerSource{},
		Publisher:  publisher,
	})

	if cfg.Monitor.Enabled {
		engine.Start()
		defer engine.Stop()
		logger.Infof("Monitoring engine started (interval: %s)", cfg.Collector.Interval)
	}

	cleanupDone := startAlertCleanup(registry, publisher, cfg.Alerts.RetentionHours)
	defer close(cleanupDone)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)

	var server *api.Server
	if cfg.API.Enabled {
		server = api.NewServer(cfg.API, cfg.WebSocket, cfg.App.Mode, api.Deps{
			Engine:    engine,
			Collector: col,
			Bus:       bus,
			Publisher: publisher,
		})

		go func() {
			logger.Infof("API server listening on port %d", cfg.API.Port)
			if err := server.Start(); err != nil && err != http.ErrServerClosed {
				publisher.Error("API server failed", err)
				errChan <- err
			}
		}()
	}

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdownChan:
		logger.Infof("Received signal %v, shutting down", sig)
	}

	if server != nil {
		shutdownTimeout := cfg.App.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = 30 * time.Second
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	logger.Info("Stopped gracefully")
	return nil
}

func newBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		return storage.NewPostgresBackend(storage.PostgresConfig{
			Host:            cfg.Storage.Postgres.Host,
			Port:            cfg.Storage.Postgres.Port,
			Name:            cfg.Storage.Postgres.Name,
			User:            cfg.Storage.Postgres.User,
			Password:        cfg.Storage.Postgres.Password,
			MaxConnections:  cfg.Storage.Postgres.MaxConnections,
			SSLMode:         cfg.Storage.Postgres.SSLMode,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
			PingTimeout:     cfg.Storage.Postgres.PingTimeout,
		})
	default:
		return storage.NewFileBackend(cfg.Storage.DataDir)
	}
}

func newCollector(cfg *config.Config) collector.Collector {
	var inner collector.Collector
	if cfg.Collector.Type == "mock" {
		inner = collector.NewMockCollector(collector.MockCollectorConfig{
			BaseCPU:    50,
			BaseMemory: 60,
			BaseDisk:   40,
			BaseLoad:   1.5,
		})
	} else {
		inner = collector.NewSystemCollector(collector.SystemCollectorConfig{
			DiskPath: cfg.Collector.DiskPath,
		})
	}

	return collector.NewResilientCollector(collector.ResilientCollectorConfig{
		Collector:     inner,
		MaxFailures:   cfg.Collector.CircuitBreaker.MaxFailures,
		Cooldown:      cfg.Collector.CircuitBreaker.Cooldown,
		RetryAttempts: cfg.Collector.RetryAttempts,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})
}

func resourceConfigs(cfg *config.Config) map[models.Resource]monitor.ResourceConfig {
	if len(cfg.Monitor.Resources) == 0 {
		return monitor.DefaultResources()
	}

	resources := make(map[models.Resource]monitor.ResourceConfig, len(cfg.Monitor.Resources))
	for name, rc := range cfg.Monitor.Resources {
		resource, ok := models.ParseResource(name)
		if !ok {
			logger.Warnf("Ignoring unknown resource in config: %s", name)
			continue
		}
		resources[resource] = monitor.ResourceConfig{
			AlertThreshold:    rc.AlertThreshold,
			CriticalThreshold: rc.CriticalThreshold,
			ForecastThreshold: rc.ForecastThreshold,
			Unit:              rc.Unit,
		}
	}
	return resources
}

// startAlertCleanup prunes stale alerts on an hourly cadence. Retention
// of zero or below disables pruning.
func startAlertCleanup(registry *alerts.Registry, publisher *events.Publisher, retentionHours int) chan struct{} {
	done := make(chan struct{})
	if retentionHours <= 0 {
		return done
	}

	retention := time.Duration(retentionHours) * time.Hour

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if removed := registry.ClearOlderThan(retention); removed > 0 {
					publisher.AlertsCleared(removed, "retention")
				}
			}
		}
	}()

	return done
}
