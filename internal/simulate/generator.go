package simulate

import (
	"math/rand"
	"time"

	"github.com/OldStager01/resource-sentinel/pkg/models"
)

// GeneratorConfig controls synthetic history generation.
type GeneratorConfig struct {
	BaseCPU    float64
	BaseMemory float64
	BaseDisk   float64
	BaseLoad   float64
	// Jitter is the +/- noise applied on top of the pattern.
	Jitter  float64
	Pattern Pattern
	Seed    int64
}

// Generator produces timestamped samples following a load pattern.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.BaseCPU == 0 {
		cfg.BaseCPU = 45
	}
	if cfg.BaseMemory == 0 {
		cfg.BaseMemory = 55
	}
	if cfg.BaseDisk == 0 {
		cfg.BaseDisk = 40
	}
	if cfg.BaseLoad == 0 {
		cfg.BaseLoad = 1.5
	}
	if cfg.Jitter == 0 {
		cfg.Jitter = 3
	}
	if cfg.Pattern == nil {
		cfg.Pattern = &SteadyPattern{}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// History generates evenly spaced samples covering the window ending
// now, oldest first.
func (g *Generator) History(window, step time.Duration) []models.Sample {
	if step <= 0 {
		step = time.Hour
	}

	count := int(window/step) + 1
	samples := make([]models.Sample, 0, count)

	start := time.Now().Add(-window)
	for i := 0; i < count; i++ {
		at := start.Add(time.Duration(i) * step)
		samples = append(samples, g.At(at))
	}

	return samples
}

// At generates a single sample for the given time.
func (g *Generator) At(at time.Time) models.Sample {
	return models.Sample{
		Timestamp:     at,
		CPUPercent:    g.noisy(g.cfg.Pattern.Apply(g.cfg.BaseCPU, at)),
		MemoryPercent: g.noisy(g.cfg.Pattern.Apply(g.cfg.BaseMemory, at)),
		DiskPercent:   clamp(g.cfg.BaseDisk + g.jitter()/2),
		LoadAverage:   clampLow(g.cfg.BaseLoad+g.jitter()/4, 0),
	}
}

func (g *Generator) noisy(v float64) float64 {
	return clampLow(clamp(v+g.jitter()), 0)
}

func (g *Generator) jitter() float64 {
	return (g.rng.Float64()*2 - 1) * g.cfg.Jitter
}
