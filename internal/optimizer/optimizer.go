package optimizer

import (
	"fmt"
	"sort"

	"github.com/OldStager01/resource-sentinel/pkg/models"
)

type Config struct {
	// CriticalUsage and HighUsage split trend-based recommendations into
	// immediate and proactive tiers.
	CriticalUsage float64
	HighUsage     float64
	// VolatilityLimit flags unstable resources; only considered once
	// usage passes VolatilityUsageFloor.
	VolatilityLimit      float64
	VolatilityUsageFloor float64
	// ExhaustionHorizonHours is how far out a predicted threshold breach
	// still warrants a recommendation.
	ExhaustionHorizonHours float64
	// StoppedContainerLimit is how many stopped containers are tolerated
	// before a cleanup recommendation.
	StoppedContainerLimit int
}

// Optimizer maps trends, predictions, and container state to prioritized
// recommendations. Pure threshold-to-text: it holds no state and reads
// no history itself.
type Optimizer struct {
	cfg Config
}

func New(cfg Config) *Optimizer {
	if cfg.CriticalUsage == 0 {
		cfg.CriticalUsage = 90.0
	}
	if cfg.HighUsage == 0 {
		cfg.HighUsage = 80.0
	}
	if cfg.VolatilityLimit == 0 {
		cfg.VolatilityLimit = 15.0
	}
	if cfg.VolatilityUsageFloor == 0 {
		cfg.VolatilityUsageFloor = 50.0
	}
	if cfg.ExhaustionHorizonHours == 0 {
		cfg.ExhaustionHorizonHours = 168.0
	}
	if cfg.StoppedContainerLimit == 0 {
		cfg.StoppedContainerLimit = 10
	}
	return &Optimizer{cfg: cfg}
}

// Recommendations combines all analysis inputs into a single list,
// sorted most urgent first.
func (o *Optimizer) Recommendations(
	trends map[models.Resource]models.Trend,
	predictions map[models.Resource]models.Prediction,
	containers []models.Container,
) []models.Recommendation {
	var recs []models.Recommendation

	recs = append(recs, o.FromTrends(trends)...)
	recs = append(recs, o.FromPredictions(predictions)...)
	if t, ok := trends[models.ResourceMemory]; ok {
		recs = append(recs, o.AnalyzeMemory(t.Current)...)
	}
	if t, ok := trends[models.ResourceDisk]; ok {
		recs = append(recs, o.AnalyzeDisk(t.Current)...)
	}
	recs = append(recs, o.AnalyzeContainers(containers)...)

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs
}

// FromTrends flags resources that are already hot, heating up, or
// erratic.
func (o *Optimizer) FromTrends(trends map[models.Resource]models.Trend) []models.Recommendation {
	var recs []models.Recommendation

	for _, resource := range models.AllResources() {
		t, ok := trends[resource]
		if !ok {
			continue
		}
		label := resourceLabel(resource)

		switch {
		case t.Current > o.cfg.CriticalUsage:
			recs = append(recs, models.Recommendation{
				Resource:     string(resource),
				CurrentUsage: t.Current,
				Priority:     models.PriorityCritical,
				Action:       fmt.Sprintf("%s at %.1f%% - immediate action required", label, t.Current),
				Impact:       "System stability at risk",
			})
		case t.Current > o.cfg.HighUsage && t.Direction == models.DirectionIncreasing:
			recs = append(recs, models.Recommendation{
				Resource:     string(resource),
				CurrentUsage: t.Current,
				Priority:     models.PriorityHigh,
				Action:       fmt.Sprintf("%s at %.1f%% and rising", label, t.Current),
				Impact:       "Will reach critical in days to weeks",
			})
		case t.Volatility > o.cfg.VolatilityLimit && t.Current > o.cfg.VolatilityUsageFloor:
			recs = append(recs, models.Recommendation{
				Resource:     string(resource),
				CurrentUsage: t.Current,
				Priority:     models.PriorityMedium,
				Action:       fmt.Sprintf("%s unstable (volatility %.1f%%)", label, t.Volatility),
				Impact:       "Unpredictable behavior, investigate cause",
			})
		}
	}

	return recs
}

// FromPredictions flags resources forecast to cross their threshold
// within the exhaustion horizon.
func (o *Optimizer) FromPredictions(predictions map[models.Resource]models.Prediction) []models.Recommendation {
	var recs []models.Recommendation

	for _, resource := range models.AllResources() {
		p, ok := predictions[resource]
		if !ok || p.TimeToThreshold == nil {
			continue
		}
		hours := *p.TimeToThreshold
		if hours >= o.cfg.ExhaustionHorizonHours {
			continue
		}

		days := hours / 24
		priority := models.PriorityMedium
		if days < 7 {
			priority = models.PriorityHigh
		}

		recs = append(recs, models.Recommendation{
			Resource:     string(resource),
			CurrentUsage: p.CurrentValue,
			Priority:     priority,
			Action:       fmt.Sprintf("%s will reach %.0f%% in %.1f days", resourceLabel(resource), p.Threshold, days),
			Impact:       fmt.Sprintf("Plan capacity increase or cleanup (confidence: %s)", p.Confidence),
		})
	}

	return recs
}

// AnalyzeMemory suggests memory actions based on current usage alone.
func (o *Optimizer) AnalyzeMemory(memoryPercent float64) []models.Recommendation {
	var recs []models.Recommendation

	switch {
	case memoryPercent > 90:
		recs = append(recs, models.Recommendation{
			Resource:     string(models.ResourceMemory),
			CurrentUsage: memoryPercent,
			Priority:     models.PriorityCritical,
			Action:       "Memory critical - investigate high-memory processes or increase RAM",
			Impact:       "System instability, OOM kills likely",
		})
	case memoryPercent > 80:
		recs = append(recs, models.Recommendation{
			Resource:     string(models.ResourceMemory),
			CurrentUsage: memoryPercent,
			Priority:     models.PriorityHigh,
			Action:       fmt.Sprintf("Memory at %.1f%% - monitor trends, identify memory leaks", memoryPercent),
			Impact:       "Approaching threshold, plan capacity",
		})
	}

	return recs
}

// AnalyzeDisk suggests cleanup based on current disk usage.
func (o *Optimizer) AnalyzeDisk(diskPercent float64) []models.Recommendation {
	var recs []models.Recommendation

	switch {
	case diskPercent > 95:
		recs = append(recs, models.Recommendation{
			Resource:         string(models.ResourceDisk),
			CurrentUsage:     diskPercent,
			Priority:         models.PriorityCritical,
			Action:           "Disk critical - clean logs, remove old containers/images immediately",
			Impact:           "Write failures imminent",
			PotentialSavings: 10.0,
		})
	case diskPercent > 85:
		recs = append(recs, models.Recommendation{
			Resource:         string(models.ResourceDisk),
			CurrentUsage:     diskPercent,
			Priority:         models.PriorityHigh,
			Action:           fmt.Sprintf("Disk at %.1f%% - schedule cleanup (container prune, log rotation)", diskPercent),
			Impact:           "Prevent write issues",
			PotentialSavings: 5.0,
		})
	case diskPercent > 75:
		recs = append(recs, models.Recommendation{
			Resource:         string(models.ResourceDisk),
			CurrentUsage:     diskPercent,
			Priority:         models.PriorityMedium,
			Action:           "Disk trending high - review large files, old backups",
			Impact:           "Proactive capacity management",
			PotentialSavings: 3.0,
		})
	}

	return recs
}

// AnalyzeContainers flags accumulated stopped containers.
func (o *Optimizer) AnalyzeContainers(containers []models.Container) []models.Recommendation {
	stopped := 0
	for _, c := range containers {
		if c.Stopped() {
			stopped++
		}
	}

	if stopped <= o.cfg.StoppedContainerLimit {
		return nil
	}

	return []models.Recommendation{{
		Resource:         "containers",
		CurrentUsage:     float64(stopped),
		Priority:         models.PriorityMedium,
		Action:           fmt.Sprintf("Remove %d stopped containers (container prune)", stopped),
		Impact:           "Free disk space, reduce runtime overhead",
		PotentialSavings: 1.0,
	}}
}

func resourceLabel(r models.Resource) string {
	switch r {
	case models.ResourceCPU:
		return "CPU"
	case models.ResourceMemory:
		return "Memory"
	case models.ResourceDisk:
		return "Disk"
	case models.ResourceLoad:
		return "Load average"
	default:
		return string(r)
	}
}
