package simulate

import (
	"math"
	"math/rand"
	"time"
)

// Pattern shapes a base usage value for a given point in time.
// Patterns are evaluated against historical timestamps, so they take
// the sample time explicitly instead of reading the clock.
type Pattern interface {
	Apply(base float64, at time.Time) float64
	Name() string
}

func ParsePattern(name string) Pattern {
	switch name {
	case "daily":
		return &DailyPattern{}
	case "weekly":
		return &WeeklyPattern{}
	case "random":
		return &RandomPattern{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	case "gradual_rise":
		return &GradualRisePattern{}
	case "sine":
		return &SineWavePattern{}
	default:
		return &SteadyPattern{}
	}
}

// SteadyPattern holds usage constant.
type SteadyPattern struct{}

func (p *SteadyPattern) Apply(base float64, _ time.Time) float64 {
	return base
}

func (p *SteadyPattern) Name() string {
	return "steady"
}

// DailyPattern follows a business-hours traffic cycle.
type DailyPattern struct{}

func (p *DailyPattern) Apply(base float64, at time.Time) float64 {
	var modifier float64
	switch hour := at.Hour(); {
	case hour >= 9 && hour <= 11:
		modifier = 1.4
	case hour >= 14 && hour <= 16:
		modifier = 1.3
	case hour >= 17 && hour <= 20:
		modifier = 1.1
	case hour >= 0 && hour <= 6:
		modifier = 0.6
	default:
		modifier = 1.0
	}

	return clamp(base * modifier)
}

func (p *DailyPattern) Name() string {
	return "daily"
}

// WeeklyPattern adds a weekend dip on top of the daily cycle.
type WeeklyPattern struct{}

func (p *WeeklyPattern) Apply(base float64, at time.Time) float64 {
	weekday := at.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return clamp(base * 0.5)
	}

	var modifier float64 = 1.0
	switch hour := at.Hour(); {
	case hour >= 9 && hour <= 11:
		modifier = 1.4
	case hour >= 14 && hour <= 16:
		modifier = 1.3
	case hour >= 0 && hour <= 6:
		modifier = 0.6
	}

	return clamp(base * modifier)
}

func (p *WeeklyPattern) Name() string {
	return "weekly"
}

// RandomPattern produces unpredictable spikes and drops.
type RandomPattern struct {
	rng *rand.Rand
}

func (p *RandomPattern) Apply(base float64, _ time.Time) float64 {
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	modifier := 0.5 + p.rng.Float64()
	return clampLow(clamp(base*modifier), 10)
}

func (p *RandomPattern) Name() string {
	return "random"
}

// GradualRisePattern increases usage over the generated window, useful
// for exercising trend and exhaustion forecasting.
type GradualRisePattern struct {
	// Start anchors the rise; zero means the first applied timestamp.
	Start time.Time
}

func (p *GradualRisePattern) Apply(base float64, at time.Time) float64 {
	if p.Start.IsZero() {
		p.Start = at
	}

	hours := at.Sub(p.Start).Hours()
	// 1% per hour, capped at a 50% increase
	increase := math.Min(hours, 50)
	return clamp(base * (1.0 + increase/100))
}

func (p *GradualRisePattern) Name() string {
	return "gradual_rise"
}

// SineWavePattern oscillates smoothly around the base.
type SineWavePattern struct {
	Period    time.Duration
	Amplitude float64
}

func (p *SineWavePattern) Apply(base float64, at time.Time) float64 {
	period := p.Period
	if period == 0 {
		period = 12 * time.Hour
	}
	amplitude := p.Amplitude
	if amplitude == 0 {
		amplitude = 20
	}

	phase := (float64(at.UnixNano()) / float64(period.Nanoseconds())) * 2 * math.Pi
	return clampLow(clamp(base+math.Sin(phase)*amplitude), 10)
}

func (p *SineWavePattern) Name() string {
	return "sine"
}

func clamp(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}

func clampLow(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
