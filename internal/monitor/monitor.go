package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/OldStager01/resource-sentinel/internal/alerts"
	"github.com/OldStager01/resource-sentinel/internal/collector"
	"github.com/OldStager01/resource-sentinel/internal/events"
	"github.com/OldStager01/resource-sentinel/internal/forecast"
	"github.com/OldStager01/resource-sentinel/internal/logger"
	"github.com/OldStager01/resource-sentinel/internal/metrics"
	"github.com/OldStager01/resource-sentinel/internal/optimizer"
	"github.com/OldStager01/resource-sentinel/internal/store"
	"github.com/OldStager01/resource-sentinel/internal/trend"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

// ResourceConfig carries one tracked resource's thresholds and unit.
type ResourceConfig struct {
	// AlertThreshold is the usage above which an alert is raised.
	AlertThreshold float64
	// CriticalThreshold escalates the alert severity.
	CriticalThreshold float64
	// ForecastThreshold is the level the forecaster projects towards.
	ForecastThreshold float64
	Unit              string
}

type Config struct {
	Interval    time.Duration
	TrendWindow time.Duration
	// ExhaustionHorizonHours bounds how far out a predicted breach
	// still raises an alert.
	ExhaustionHorizonHours float64
	Resources              map[models.Resource]ResourceConfig
}

// DefaultResources returns the canonical tracked-resource set with its
// default thresholds.
func DefaultResources() map[models.Resource]ResourceConfig {
	return map[models.Resource]ResourceConfig{
		models.ResourceCPU:    {AlertThreshold: 80, CriticalThreshold: 95, ForecastThreshold: 90, Unit: "%"},
		models.ResourceMemory: {AlertThreshold: 85, CriticalThreshold: 95, ForecastThreshold: 90, Unit: "%"},
		models.ResourceDisk:   {AlertThreshold: 90, CriticalThreshold: 95, ForecastThreshold: 90, Unit: "%"},
		models.ResourceLoad:   {AlertThreshold: 8, CriticalThreshold: 16, Unit: ""},
	}
}

// Engine is the monitoring core: it records samples, derives trends and
// predictions on demand, and turns breaches into deduplicated alerts.
type Engine struct {
	cfg        Config
	store      *store.Store
	registry   *alerts.Registry
	calculator *trend.Calculator
	forecaster *forecast.Forecaster
	optimizer  *optimizer.Optimizer
	collector  collector.Collector
	containers collector.ContainerSource
	publisher  *events.Publisher

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

type Deps struct {
	Store      *store.Store
	Registry   *alerts.Registry
	Calculator *trend.Calculator
	Forecaster *forecast.Forecaster
	Optimizer  *optimizer.Optimizer
	Collector  collector.Collector
	Containers collector.ContainerSource
	Publisher  *events.Publisher
}

func New(cfg Config, deps Deps) *Engine {
	if cfg.Interval == 0 {
		cfg.Interval = time.Minute
	}
	if cfg.TrendWindow == 0 {
		cfg.TrendWindow = 24 * time.Hour
	}
	if cfg.ExhaustionHorizonHours == 0 {
		cfg.ExhaustionHorizonHours = 168
	}
	if len(cfg.Resources) == 0 {
		cfg.Resources = DefaultResources()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Engine{
		cfg:        cfg,
		store:      deps.Store,
		registry:   deps.Registry,
		calculator: deps.Calculator,
		forecaster: deps.Forecaster,
		optimizer:  deps.Optimizer,
		collector:  deps.Collector,
		containers: deps.Containers,
		publisher:  deps.Publisher,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Record appends a sample to the history and raises alerts for any
// thresholds the sample breaches.
func (e *Engine) Record(sample models.Sample) {
	e.store.Record(sample)
	e.publisher.SampleRecorded(&sample)

	metrics.Get().IncSamplesRecorded()
	for _, resource := range models.AllResources() {
		if value, ok := sample.Value(resource); ok {
			metrics.Get().SetResourceUsage(string(resource), value)
		}
	}

	if err := e.store.PersistError(); err != nil {
		e.publisher.PersistenceFailed("store", err)
		metrics.Get().IncPersistenceErrors()
	}

	e.checkThresholds(sample)
}

// Trend computes one resource's trend over the given window. An empty
// window yields a zeroed trend with direction "unknown".
func (e *Engine) Trend(window time.Duration, resource models.Resource) models.Trend {
	return e.calculator.Compute(e.store.Window(window), resource)
}

// Trends computes trends for all tracked resources over the window.
// Fewer than 2 samples in the window yields an empty map.
func (e *Engine) Trends(window time.Duration) map[models.Resource]models.Trend {
	samples := e.store.Window(window)
	if len(samples) < 2 {
		return map[models.Resource]models.Trend{}
	}

	trends := make(map[models.Resource]models.Trend, len(e.cfg.Resources))
	for resource := range e.cfg.Resources {
		trends[resource] = e.calculator.Compute(samples, resource)
	}
	return trends
}

// Predict forecasts a single resource against a threshold. The boolean
// is false when the history cannot support a prediction.
func (e *Engine) Predict(resource models.Resource, threshold float64) (models.Prediction, bool) {
	return e.forecaster.Predict(e.store.All(), resource, threshold)
}

// Predictions forecasts every percent-bounded resource against its
// configured threshold. Resources without enough history are absent.
func (e *Engine) Predictions() map[models.Resource]models.Prediction {
	history := e.store.All()
	predictions := make(map[models.Resource]models.Prediction)

	for resource, rc := range e.cfg.Resources {
		if !resource.PercentBounded() || rc.ForecastThreshold <= 0 {
			continue
		}
		if p, ok := e.forecaster.Predict(history, resource, rc.ForecastThreshold); ok {
			predictions[resource] = p
		}
	}
	return predictions
}

// Recommendations combines trends, predictions, and container state
// into a prioritized list.
func (e *Engine) Recommendations(ctx context.Context) []models.Recommendation {
	var containers []models.Container
	if e.containers != nil {
		listed, err := e.containers.List(ctx)
		if err != nil {
			logger.WithError(err).Warn("Container listing failed")
		} else {
			containers = listed
		}
	}

	recs := e.optimizer.Recommendations(e.Trends(e.cfg.TrendWindow), e.Predictions(), containers)
	e.publisher.Recommendations(recs)
	return recs
}

// Registry exposes the alert lifecycle operations.
func (e *Engine) Registry() *alerts.Registry {
	return e.registry
}

// Store exposes the sample history.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Start launches the periodic collect-record-analyze loop.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running || e.collector == nil {
		return
	}
	e.running = true

	e.wg.Add(1)
	go e.run()

	logger.Infof("Monitor started (interval: %v)", e.cfg.Interval)
}

// Stop halts the loop and waits for the in-flight cycle.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()

	logger.Info("Monitor stopped")
}

func (e *Engine) run() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	e.runCycle()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			e.runCycle()
		}
	}
}

// runCycle performs one collect-record-analyze pass. A failed
// collection is a no-op cycle, never fatal.
func (e *Engine) runCycle() {
	timeout := e.cfg.Interval - time.Second
	if timeout <= 0 {
		timeout = e.cfg.Interval
	}
	ctx, cancel := context.WithTimeout(e.ctx, timeout)
	defer cancel()

	start := time.Now()
	sample, err := e.collector.Collect(ctx)
	metrics.Get().IncCollections()
	metrics.Get().SetCollectionLatency(time.Since(start))
	if err != nil {
		logger.WithError(err).Warn("Collection failed, skipping cycle")
		e.publisher.CollectionFailed(err)
		metrics.Get().IncCollectionErrors()
		return
	}

	e.Record(*sample)
	e.analyzeTrends()
	e.checkExhaustion()
}

// analyzeTrends publishes a trend event per tracked resource so stream
// subscribers see analysis results each cycle, not just breaches.
func (e *Engine) analyzeTrends() {
	for _, t := range e.Trends(e.cfg.TrendWindow) {
		trend := t
		e.publisher.TrendAnalyzed(&trend)
	}
}

// checkThresholds raises a deduplicated alert per resource whose
// current reading exceeds its configured threshold.
func (e *Engine) checkThresholds(sample models.Sample) {
	for resource, rc := range e.cfg.Resources {
		if rc.AlertThreshold <= 0 {
			continue
		}
		value, ok := sample.Value(resource)
		if !ok || value <= rc.AlertThreshold {
			continue
		}

		severity := models.SeverityHigh
		if rc.CriticalThreshold > 0 && value >= rc.CriticalThreshold {
			severity = models.SeverityCritical
		}

		message := fmt.Sprintf("%s usage at %.1f%s (threshold %.1f%s)",
			resource, value, rc.Unit, rc.AlertThreshold, rc.Unit)

		alert, created := e.registry.Create(string(resource)+"_high", severity, message, value, rc.AlertThreshold)
		if created {
			e.publisher.AlertCreated(alert)
			metrics.Get().IncAlertsCreated(string(severity))
		}

		if err := e.registry.PersistError(); err != nil {
			e.publisher.PersistenceFailed("alerts", err)
			metrics.Get().IncPersistenceErrors()
		}
	}

	metrics.Get().SetActiveAlerts(len(e.registry.Active("")))
}

// checkExhaustion raises alerts for resources forecast to cross their
// threshold within the horizon.
func (e *Engine) checkExhaustion() {
	for resource, p := range e.Predictions() {
		prediction := p
		e.publisher.PredictionMade(&prediction)

		if p.TimeToThreshold == nil {
			continue
		}
		hours := *p.TimeToThreshold
		if hours >= e.cfg.ExhaustionHorizonHours {
			continue
		}

		severity := models.SeverityMedium
		if hours < 7*24 {
			severity = models.SeverityHigh
		}

		message := fmt.Sprintf("%s forecast to reach %.0f%% in %.1f days (confidence: %s)",
			resource, p.Threshold, hours/24, p.Confidence)

		alert, created := e.registry.Create(string(resource)+"_exhaustion", severity, message, p.CurrentValue, p.Threshold)
		if created {
			e.publisher.AlertCreated(alert)
			metrics.Get().IncAlertsCreated(string(severity))
		}
	}
}
