package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/resource-sentinel/internal/forecast"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

func cpuSeries(step time.Duration, values ...float64) []models.Sample {
	base := time.Now().Add(-time.Duration(len(values)) * step)
	samples := make([]models.Sample, 0, len(values))
	for i, v := range values {
		samples = append(samples, models.Sample{
			Timestamp:   base.Add(time.Duration(i) * step),
			CPUPercent:  v,
			LoadAverage: v / 10,
		})
	}
	return samples
}

func rising(n int, start, perStep float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*perStep
	}
	return values
}

func repeat(n int, v float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return values
}

func TestForecaster_Predict_InsufficientHistory(t *testing.T) {
	f := forecast.New(forecast.Config{})

	history := cpuSeries(time.Hour, rising(9, 50, 1)...)

	_, ok := f.Predict(history, models.ResourceCPU, 90)
	assert.False(t, ok)
}

func TestForecaster_Predict_RisingUsage(t *testing.T) {
	f := forecast.New(forecast.Config{})

	// 25 hourly samples climbing 1%/h, ending at 74%.
	history := cpuSeries(time.Hour, rising(25, 50, 1)...)

	p, ok := f.Predict(history, models.ResourceCPU, 90)
	require.True(t, ok)

	assert.InDelta(t, 74.0, p.CurrentValue, 1e-9)
	assert.False(t, p.Stable)
	assert.InDelta(t, 100.0, p.Forecast7d, 1e-9, "7d projection capped at 100%%")
	assert.InDelta(t, 100.0, p.Forecast30d, 1e-9)

	require.NotNil(t, p.TimeToThreshold)
	assert.InDelta(t, 16.0, *p.TimeToThreshold, 0.1)
}

func TestForecaster_Predict_FallingUsageIsStable(t *testing.T) {
	f := forecast.New(forecast.Config{})

	history := cpuSeries(time.Hour, rising(12, 80, -2)...)

	p, ok := f.Predict(history, models.ResourceCPU, 90)
	require.True(t, ok)

	assert.True(t, p.Stable)
	assert.InDelta(t, p.CurrentValue, p.Forecast7d, 1e-9)
	assert.InDelta(t, p.CurrentValue, p.Forecast30d, 1e-9)
	assert.Nil(t, p.TimeToThreshold)
}

func TestForecaster_Predict_ThresholdAlreadyBreached(t *testing.T) {
	f := forecast.New(forecast.Config{})

	// Rising past the threshold already: no time-to-threshold.
	history := cpuSeries(time.Hour, rising(15, 85, 1)...)

	p, ok := f.Predict(history, models.ResourceCPU, 90)
	require.True(t, ok)

	assert.Greater(t, p.CurrentValue, p.Threshold)
	assert.Nil(t, p.TimeToThreshold)
}

func TestForecaster_Predict_LoadIsNotPercentCapped(t *testing.T) {
	f := forecast.New(forecast.Config{})

	history := cpuSeries(time.Hour, rising(20, 500, 10)...)

	p, ok := f.Predict(history, models.ResourceLoad, 100)
	require.True(t, ok)

	// Load series is values/10, rising 1 per hour from 50.
	assert.Greater(t, p.Forecast30d, 100.0)
}

func TestForecaster_Predict_CadenceFromTimestamps(t *testing.T) {
	f := forecast.New(forecast.Config{})

	// 1%% per 30-minute sample is 2%%/h.
	history := cpuSeries(30*time.Minute, rising(20, 60, 1)...)

	p, ok := f.Predict(history, models.ResourceCPU, 95)
	require.True(t, ok)

	require.NotNil(t, p.TimeToThreshold)
	// current 79, 16 points to go at 2%/h
	assert.InDelta(t, 8.0, *p.TimeToThreshold, 0.1)
}

func TestForecaster_Predict_WindowBoundsHistory(t *testing.T) {
	f := forecast.New(forecast.Config{Window: 10})

	// Old spike outside the window must not influence the slope.
	values := append(repeat(50, 90), repeat(10, 40)...)
	history := cpuSeries(time.Hour, values...)

	p, ok := f.Predict(history, models.ResourceCPU, 95)
	require.True(t, ok)

	assert.True(t, p.Stable)
	assert.InDelta(t, 40.0, p.CurrentValue, 1e-9)
}

func TestForecaster_Confidence(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected models.Confidence
	}{
		{
			name:     "short history is low",
			values:   rising(15, 50, 0.1),
			expected: models.ConfidenceLow,
		},
		{
			name:     "moderate history is medium",
			values:   rising(30, 50, 0.1),
			expected: models.ConfidenceMedium,
		},
		{
			name:     "long quiet history is high",
			values:   repeat(100, 60),
			expected: models.ConfidenceHigh,
		},
		{
			name:     "long noisy ramp is low",
			values:   rising(100, 1, 1),
			expected: models.ConfidenceLow,
		},
	}

	f := forecast.New(forecast.Config{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := f.Predict(cpuSeries(time.Hour, tt.values...), models.ResourceCPU, 95)
			require.True(t, ok)
			assert.Equal(t, tt.expected, p.Confidence)
		})
	}
}
