package collector_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/resource-sentinel/internal/collector"
	"github.com/OldStager01/resource-sentinel/internal/resilience"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

func TestMockCollector_Collect(t *testing.T) {
	c := collector.NewMockCollector(collector.MockCollectorConfig{
		BaseCPU:    50,
		BaseMemory: 60,
		BaseDisk:   40,
		BaseLoad:   1.5,
		Variance:   5,
		Seed:       1,
	})

	sample, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 50, sample.CPUPercent, 5.01)
	assert.InDelta(t, 60, sample.MemoryPercent, 5.01)
	assert.InDelta(t, 40, sample.DiskPercent, 5.01)
	assert.GreaterOrEqual(t, sample.LoadAverage, 0.0)
	assert.WithinDuration(t, time.Now(), sample.Timestamp, time.Second)
}

func TestMockCollector_FailNext(t *testing.T) {
	c := collector.NewMockCollector(collector.MockCollectorConfig{BaseCPU: 50, Seed: 1})

	c.FailNext(2)

	_, err := c.Collect(context.Background())
	assert.ErrorIs(t, err, collector.ErrCollectionFailed)

	_, err = c.Collect(context.Background())
	assert.ErrorIs(t, err, collector.ErrCollectionFailed)

	_, err = c.Collect(context.Background())
	assert.NoError(t, err)
}

func TestMockCollector_BaseAdjustment(t *testing.T) {
	c := collector.NewMockCollector(collector.MockCollectorConfig{BaseCPU: 20, Variance: 1, Seed: 1})

	c.SetBaseCPU(90)

	sample, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 90, sample.CPUPercent, 1.01)
}

func TestResilientCollector_RetriesThenSucceeds(t *testing.T) {
	inner := collector.NewMockCollector(collector.MockCollectorConfig{BaseCPU: 50, Seed: 1})
	inner.FailNext(2)

	rc := collector.NewResilientCollector(collector.ResilientCollectorConfig{
		Collector:     inner,
		MaxFailures:   5,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	})

	sample, err := rc.Collect(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sample)
	assert.Equal(t, resilience.StateClosed, rc.CircuitState())
}

func TestResilientCollector_OpensAfterRepeatedFailure(t *testing.T) {
	inner := collector.NewMockCollector(collector.MockCollectorConfig{BaseCPU: 50, Seed: 1})
	inner.FailNext(100)

	rc := collector.NewResilientCollector(collector.ResilientCollectorConfig{
		Collector:     inner,
		MaxFailures:   2,
		Cooldown:      time.Minute,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
	})

	_, err := rc.Collect(context.Background())
	require.Error(t, err)
	_, err = rc.Collect(context.Background())
	require.Error(t, err)

	assert.Equal(t, resilience.StateOpen, rc.CircuitState())

	_, err = rc.Collect(context.Background())
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestStaticContainerSource(t *testing.T) {
	src := &collector.StaticContainerSource{
		Containers: []models.Container{
			{Name: "web", Status: "running"},
			{Name: "old", Status: "exited"},
		},
	}

	containers, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, containers, 2)
}
