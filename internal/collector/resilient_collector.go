package collector

import (
	"context"
	"time"

	"github.com/OldStager01/resource-sentinel/internal/logger"
	"github.com/OldStager01/resource-sentinel/internal/metrics"
	"github.com/OldStager01/resource-sentinel/internal/resilience"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

// ResilientCollector wraps another collector with retries and a circuit
// breaker so a misbehaving metrics source cannot stall the sampling
// loop.
type ResilientCollector struct {
	collector     Collector
	breaker       *resilience.Breaker
	retryAttempts int
	retryDelay    time.Duration
}

type ResilientCollectorConfig struct {
	Collector     Collector
	MaxFailures   int
	Cooldown      time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	OnStateChange func(name string, from, to resilience.State)
}

func NewResilientCollector(cfg ResilientCollectorConfig) *ResilientCollector {
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 1 * time.Second
	}

	onStateChange := cfg.OnStateChange
	breaker := resilience.NewBreaker("collector", resilience.Config{
		MaxFailures: cfg.MaxFailures,
		Cooldown:    cfg.Cooldown,
		OnStateChange: func(name string, from, to resilience.State) {
			metrics.Get().SetCircuitBreakerState(name, int(to))
			if onStateChange != nil {
				onStateChange(name, from, to)
			}
		},
	})

	return &ResilientCollector{
		collector:     cfg.Collector,
		breaker:       breaker,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
	}
}

func (c *ResilientCollector) Collect(ctx context.Context) (*models.Sample, error) {
	var sample *models.Sample
	var lastErr error

	err := c.breaker.Execute(func() error {
		for attempt := 1; attempt <= c.retryAttempts; attempt++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var err error
			sample, err = c.collector.Collect(ctx)
			if err == nil {
				return nil
			}

			lastErr = err
			logger.Warnf("Collection attempt %d/%d failed: %v", attempt, c.retryAttempts, err)

			if attempt < c.retryAttempts {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(c.retryDelay):
				}
			}
		}
		return lastErr
	})

	if err != nil {
		return nil, err
	}

	return sample, nil
}

func (c *ResilientCollector) HealthCheck(ctx context.Context) error {
	return c.collector.HealthCheck(ctx)
}

func (c *ResilientCollector) Close() error {
	return c.collector.Close()
}

func (c *ResilientCollector) CircuitState() resilience.State {
	return c.breaker.State()
}
