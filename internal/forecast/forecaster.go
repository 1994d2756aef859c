package forecast

import (
	"github.com/OldStager01/resource-sentinel/internal/trend"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

const (
	defaultMinSamples      = 10
	defaultWindow          = 168
	defaultHoursPerSample  = 1.0
	defaultNegligibleSlope = 0.01

	percentCap = 100.0
	hours7d    = 7 * 24
	hours30d   = 30 * 24
)

type Config struct {
	// MinSamples is the minimum history length required to produce any
	// prediction at all.
	MinSamples int
	// Window bounds how many of the most recent samples feed the
	// regression.
	Window int
	// HoursPerSample is the assumed sampling cadence, used only when the
	// window's timestamps cannot yield an elapsed duration.
	HoursPerSample float64
	// NegligibleSlope is the per-hour growth under which a rising trend
	// is still reported as stable.
	NegligibleSlope float64
}

// Forecaster projects a resource forward along its regression slope and
// estimates time to a threshold. It is a heuristic estimator, not a
// statistical model: the projection is linear and the confidence level
// is a coarse function of sample count and volatility.
type Forecaster struct {
	cfg Config
}

func New(cfg Config) *Forecaster {
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = defaultMinSamples
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	if cfg.HoursPerSample <= 0 {
		cfg.HoursPerSample = defaultHoursPerSample
	}
	if cfg.NegligibleSlope <= 0 {
		cfg.NegligibleSlope = defaultNegligibleSlope
	}
	return &Forecaster{cfg: cfg}
}

// Predict returns a forecast for one resource, or false when the history
// is too short to support one. It never fails outright: degenerate input
// degrades to absence.
func (f *Forecaster) Predict(history []models.Sample, resource models.Resource, threshold float64) (models.Prediction, bool) {
	if len(history) < f.cfg.MinSamples {
		return models.Prediction{}, false
	}

	window := history
	if len(window) > f.cfg.Window {
		window = window[len(window)-f.cfg.Window:]
	}

	values := models.Values(window, resource)
	if len(values) < f.cfg.MinSamples {
		return models.Prediction{}, false
	}

	current := values[len(values)-1]
	slopePerHour := trend.Slope(values) / f.hoursPerStep(window)

	p := models.Prediction{
		Resource:     resource,
		CurrentValue: current,
		Threshold:    threshold,
		Confidence:   assessConfidence(values),
	}

	if slopePerHour <= 0 {
		p.Forecast7d = current
		p.Forecast30d = current
		p.Stable = true
		return p, true
	}

	p.Forecast7d = capPercent(resource, current+slopePerHour*hours7d)
	p.Forecast30d = capPercent(resource, current+slopePerHour*hours30d)
	p.Stable = slopePerHour < f.cfg.NegligibleSlope

	if hoursTo := (threshold - current) / slopePerHour; hoursTo > 0 {
		p.TimeToThreshold = &hoursTo
	}

	return p, true
}

// hoursPerStep derives the average elapsed hours between consecutive
// samples from their timestamps, falling back to the configured cadence
// when the window spans no measurable time.
func (f *Forecaster) hoursPerStep(window []models.Sample) float64 {
	if len(window) >= 2 {
		elapsed := window[len(window)-1].Timestamp.Sub(window[0].Timestamp).Hours()
		if elapsed > 0 {
			return elapsed / float64(len(window)-1)
		}
	}
	return f.cfg.HoursPerSample
}

func capPercent(resource models.Resource, v float64) float64 {
	if resource.PercentBounded() && v > percentCap {
		return percentCap
	}
	return v
}

// assessConfidence grades a prediction by how much history backs it and
// how noisy that history is.
func assessConfidence(values []float64) models.Confidence {
	if len(values) < 20 {
		return models.ConfidenceLow
	}

	m := mean(values)
	if m == 0 {
		return models.ConfidenceLow
	}

	if len(values) < 50 {
		return models.ConfidenceMedium
	}

	cv := trend.Volatility(values) / 100

	switch {
	case cv < 0.1:
		return models.ConfidenceHigh
	case cv < 0.3:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
