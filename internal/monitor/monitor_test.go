package monitor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/resource-sentinel/internal/alerts"
	"github.com/OldStager01/resource-sentinel/internal/collector"
	"github.com/OldStager01/resource-sentinel/internal/events"
	"github.com/OldStager01/resource-sentinel/internal/forecast"
	"github.com/OldStager01/resource-sentinel/internal/monitor"
	"github.com/OldStager01/resource-sentinel/internal/optimizer"
	"github.com/OldStager01/resource-sentinel/internal/storage"
	"github.com/OldStager01/resource-sentinel/internal/store"
	"github.com/OldStager01/resource-sentinel/internal/trend"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

type engineFixture struct {
	engine *monitor.Engine
	bus    *events.EventBus
}

func newEngineFixture(t *testing.T, cfg monitor.Config, coll collector.Collector) *engineFixture {
	t.Helper()

	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	bus := events.NewEventBus(100)
	t.Cleanup(bus.Close)

	engine := monitor.New(cfg, monitor.Deps{
		Store:      store.New(backend, store.Config{}),
		Registry:   alerts.NewRegistry(backend),
		Calculator: trend.NewCalculator(trend.Config{}),
		Forecaster: forecast.New(forecast.Config{MinSamples: 10}),
		Optimizer:  optimizer.New(optimizer.Config{}),
		Collector:  coll,
		Publisher:  events.NewPublisher(bus),
	})

	return &engineFixture{engine: engine, bus: bus}
}

func recordRising(e *monitor.Engine, resource models.Resource, n int, start, perStep float64) {
	now := time.Now()
	for i := 0; i < n; i++ {
		sample := models.Sample{Timestamp: now.Add(time.Duration(i-n+1) * time.Hour)}
		value := start + float64(i)*perStep
		switch resource {
		case models.ResourceCPU:
			sample.CPUPercent = value
		case models.ResourceMemory:
			sample.MemoryPercent = value
		case models.ResourceDisk:
			sample.DiskPercent = value
		}
		e.Record(sample)
	}
}

func TestEngine_RecordAndTrend(t *testing.T) {
	f := newEngineFixture(t, monitor.Config{}, nil)

	recordRising(f.engine, models.ResourceCPU, 25, 30, 1)

	got := f.engine.Trend(48*time.Hour, models.ResourceCPU)
	assert.Equal(t, models.DirectionIncreasing, got.Direction)
	assert.Equal(t, 25, got.DataPoints)
	assert.InDelta(t, 54, got.Current, 0.001)
	assert.InDelta(t, 30, got.Minimum, 0.001)
	assert.InDelta(t, 54, got.Maximum, 0.001)
}

func TestEngine_Trends_RequiresTwoSamples(t *testing.T) {
	f := newEngineFixture(t, monitor.Config{}, nil)

	f.engine.Record(models.Sample{Timestamp: time.Now(), CPUPercent: 50})
	assert.Empty(t, f.engine.Trends(time.Hour))

	f.engine.Record(models.Sample{Timestamp: time.Now(), CPUPercent: 52})
	trends := f.engine.Trends(time.Hour)
	assert.Contains(t, trends, models.ResourceCPU)
	assert.Contains(t, trends, models.ResourceMemory)
}

func TestEngine_ThresholdBreachCreatesDedupedAlert(t *testing.T) {
	f := newEngineFixture(t, monitor.Config{}, nil)
	created := f.bus.Subscribe(models.EventTypeAlertCreated)

	f.engine.Record(models.Sample{Timestamp: time.Now(), CPUPercent: 85})
	f.engine.Record(models.Sample{Timestamp: time.Now(), CPUPercent: 87})

	active := f.engine.Registry().Active("")
	require.Len(t, active, 1)
	assert.Equal(t, "cpu_high", active[0].Type)
	assert.Equal(t, models.SeverityHigh, active[0].Severity)

	select {
	case event := <-created:
		assert.Equal(t, "cpu_high", event.Resource)
	default:
		t.Fatal("expected an alert_created event")
	}
	select {
	case <-created:
		t.Fatal("duplicate breach must not publish a second event")
	default:
	}
}

func TestEngine_CriticalThresholdEscalatesSeverity(t *testing.T) {
	f := newEngineFixture(t, monitor.Config{}, nil)

	f.engine.Record(models.Sample{Timestamp: time.Now(), MemoryPercent: 96})

	active := f.engine.Registry().Active("")
	require.Len(t, active, 1)
	assert.Equal(t, "memory_high", active[0].Type)
	assert.Equal(t, models.SeverityCritical, active[0].Severity)
}

func TestEngine_Predictions(t *testing.T) {
	f := newEngineFixture(t, monitor.Config{}, nil)

	recordRising(f.engine, models.ResourceDisk, 25, 50, 1)

	predictions := f.engine.Predictions()
	p, ok := predictions[models.ResourceDisk]
	require.True(t, ok)
	require.NotNil(t, p.TimeToThreshold)
	assert.InDelta(t, 16, *p.TimeToThreshold, 1)
	assert.InDelta(t, 74, p.CurrentValue, 0.001)
}

func TestEngine_ExhaustionAlertFromLoop(t *testing.T) {
	coll := collector.NewMockCollector(collector.MockCollectorConfig{
		BaseCPU:  74,
		Variance: 1,
		Seed:     1,
	})

	f := newEngineFixture(t, monitor.Config{Interval: time.Hour}, coll)
	created := f.bus.Subscribe(models.EventTypeAlertCreated)

	// An hour-per-sample ramp approaching the forecast threshold.
	recordRising(f.engine, models.ResourceCPU, 25, 50, 1)

	f.engine.Start()
	defer f.engine.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-created:
			if event.Resource == "cpu_exhaustion" {
				active := f.engine.Registry().Active("")
				for _, a := range active {
					if a.Type == "cpu_exhaustion" {
						assert.Equal(t, models.SeverityHigh, a.Severity)
						return
					}
				}
				t.Fatal("exhaustion event published but alert missing from registry")
			}
		case <-deadline:
			t.Fatal("timed out waiting for exhaustion alert")
		}
	}
}

func TestEngine_LoopPublishesAnalysisEvents(t *testing.T) {
	coll := collector.NewMockCollector(collector.MockCollectorConfig{
		BaseCPU:  74,
		Variance: 1,
		Seed:     1,
	})

	f := newEngineFixture(t, monitor.Config{Interval: time.Hour}, coll)
	trendEvents := f.bus.Subscribe(models.EventTypeTrendAnalyzed)
	predictionEvents := f.bus.Subscribe(models.EventTypePredictionMade)

	recordRising(f.engine, models.ResourceCPU, 25, 50, 1)

	f.engine.Start()
	defer f.engine.Stop()

	select {
	case event := <-trendEvents:
		assert.Equal(t, models.EventTypeTrendAnalyzed, event.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for trend event")
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-predictionEvents:
			if event.Resource != string(models.ResourceCPU) {
				continue
			}
			// The cpu forecast carries a time-to-threshold, which the
			// publisher flags as a warning.
			assert.Equal(t, models.EventSeverityWarning, event.Severity)
			return
		case <-deadline:
			t.Fatal("timed out waiting for cpu prediction event")
		}
	}
}

func TestEngine_Recommendations(t *testing.T) {
	f := newEngineFixture(t, monitor.Config{}, nil)

	now := time.Now()
	for i := 0; i < 25; i++ {
		f.engine.Record(models.Sample{
			Timestamp:  now.Add(time.Duration(i-24) * time.Hour),
			CPUPercent: 96,
		})
	}

	recs := f.engine.Recommendations(context.Background())
	require.NotEmpty(t, recs)
	assert.Equal(t, models.PriorityCritical, recs[0].Priority)
}
