package trend

import (
	"math"

	"github.com/OldStager01/resource-sentinel/pkg/models"
)

const (
	defaultIncreasingSlope = 0.1
	defaultDecreasingSlope = -0.1
)

type Config struct {
	// IncreasingSlope is the slope above which a trend counts as
	// increasing; DecreasingSlope the slope below which it counts as
	// decreasing. Everything between is stable.
	IncreasingSlope float64
	DecreasingSlope float64
}

// Calculator derives descriptive statistics and a linear trend from a
// window of samples. It holds no state and never fails; an empty window
// yields a zeroed trend with direction "unknown".
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	if cfg.IncreasingSlope == 0 {
		cfg.IncreasingSlope = defaultIncreasingSlope
	}
	if cfg.DecreasingSlope == 0 {
		cfg.DecreasingSlope = defaultDecreasingSlope
	}
	return &Calculator{cfg: cfg}
}

func (c *Calculator) Compute(samples []models.Sample, resource models.Resource) models.Trend {
	values := models.Values(samples, resource)

	if len(values) == 0 {
		return models.Trend{
			Resource:  resource,
			Direction: models.DirectionUnknown,
		}
	}

	slope := Slope(values)

	return models.Trend{
		Resource:   resource,
		Current:    values[len(values)-1],
		Average:    mean(values),
		Minimum:    minimum(values),
		Maximum:    maximum(values),
		Direction:  c.direction(slope),
		Volatility: Volatility(values),
		Slope:      slope,
		DataPoints: len(values),
	}
}

func (c *Calculator) direction(slope float64) models.Direction {
	switch {
	case slope > c.cfg.IncreasingSlope:
		return models.DirectionIncreasing
	case slope < c.cfg.DecreasingSlope:
		return models.DirectionDecreasing
	default:
		return models.DirectionStable
	}
}

// Slope computes the ordinary least-squares regression slope of the
// values against their index. Fewer than 2 points, or a degenerate
// denominator, yields 0.
func Slope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	xMean := float64(n-1) / 2
	yMean := mean(values)

	var numerator, denominator float64
	for i, y := range values {
		dx := float64(i) - xMean
		numerator += dx * (y - yMean)
		denominator += dx * dx
	}

	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Volatility is the coefficient of variation as a percentage. It is 0
// for fewer than 2 points or a non-positive mean.
func Volatility(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	if m <= 0 {
		return 0
	}
	return stdev(values) / m * 100
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

// stdev is the sample standard deviation (n-1 denominator).
func stdev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

func minimum(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func maximum(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
