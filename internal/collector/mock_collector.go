package collector

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/OldStager01/resource-sentinel/pkg/models"
)

// MockCollector produces synthetic samples around configurable base
// values, for tests and demo runs. Bases can be changed while running
// to simulate load changes.
type MockCollector struct {
	mu         sync.Mutex
	baseCPU    float64
	baseMemory float64
	baseDisk   float64
	baseLoad   float64
	variance   float64
	failNext   int
	rng        *rand.Rand
}

type MockCollectorConfig struct {
	BaseCPU    float64
	BaseMemory float64
	BaseDisk   float64
	BaseLoad   float64
	Variance   float64
	Seed       int64
}

func NewMockCollector(cfg MockCollectorConfig) *MockCollector {
	if cfg.Variance == 0 {
		cfg.Variance = 5.0
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &MockCollector{
		baseCPU:    cfg.BaseCPU,
		baseMemory: cfg.BaseMemory,
		baseDisk:   cfg.BaseDisk,
		baseLoad:   cfg.BaseLoad,
		variance:   cfg.Variance,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (c *MockCollector) Collect(ctx context.Context) (*models.Sample, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failNext > 0 {
		c.failNext--
		return nil, ErrCollectionFailed
	}

	return &models.Sample{
		Timestamp:     time.Now(),
		CPUPercent:    clampPercent(c.baseCPU + c.jitter()),
		MemoryPercent: clampPercent(c.baseMemory + c.jitter()),
		DiskPercent:   clampPercent(c.baseDisk + c.jitter()),
		LoadAverage:   clampLow(c.baseLoad + c.jitter()/10),
	}, nil
}

func (c *MockCollector) HealthCheck(ctx context.Context) error {
	return nil
}

func (c *MockCollector) Close() error {
	return nil
}

func (c *MockCollector) SetBaseCPU(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseCPU = v
}

func (c *MockCollector) SetBaseMemory(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseMemory = v
}

func (c *MockCollector) SetBaseDisk(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseDisk = v
}

// FailNext makes the next n collections fail, for resilience testing.
func (c *MockCollector) FailNext(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failNext = n
}

func (c *MockCollector) jitter() float64 {
	return (c.rng.Float64()*2 - 1) * c.variance
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampLow(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
