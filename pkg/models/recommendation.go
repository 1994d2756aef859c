package models

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

var priorityRanks = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// Rank returns the priority's sort position, most urgent first.
func (p Priority) Rank() int {
	if rank, ok := priorityRanks[p]; ok {
		return rank
	}
	return 4
}

// Recommendation is an actionable optimization suggestion derived from
// trends, predictions, and container state.
type Recommendation struct {
	Resource         string   `json:"resource"`
	CurrentUsage     float64  `json:"current_usage"`
	Priority         Priority `json:"priority"`
	Action           string   `json:"action"`
	Impact           string   `json:"impact"`
	PotentialSavings float64  `json:"potential_savings,omitempty"`
}

// Container is the per-container view provided by a container-runtime
// collaborator, used for overhead analysis.
type Container struct {
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// Stopped reports whether the container is present but not running.
func (c Container) Stopped() bool {
	switch c.Status {
	case "exited", "stopped", "created":
		return true
	}
	return false
}
