package models

import "time"

// Resource identifies a tracked system resource.
type Resource string

const (
	ResourceCPU    Resource = "cpu"
	ResourceMemory Resource = "memory"
	ResourceDisk   Resource = "disk"
	ResourceLoad   Resource = "load"
)

// AllResources returns the tracked resources in canonical order.
func AllResources() []Resource {
	return []Resource{ResourceCPU, ResourceMemory, ResourceDisk, ResourceLoad}
}

// ParseResource maps a resource name to its typed value.
func ParseResource(name string) (Resource, bool) {
	switch Resource(name) {
	case ResourceCPU, ResourceMemory, ResourceDisk, ResourceLoad:
		return Resource(name), true
	default:
		return "", false
	}
}

// PercentBounded reports whether the resource is expressed as a 0-100
// percentage. Load average is the one tracked resource that is not.
func (r Resource) PercentBounded() bool {
	return r != ResourceLoad
}

// Field returns the persisted JSON field name for the resource.
func (r Resource) Field() string {
	switch r {
	case ResourceCPU:
		return "cpu_percent"
	case ResourceMemory:
		return "memory_percent"
	case ResourceDisk:
		return "disk_percent"
	case ResourceLoad:
		return "load_average"
	default:
		return string(r)
	}
}

// Sample is a single timestamped reading of all tracked resources.
// Samples are immutable once recorded.
type Sample struct {
	Timestamp     time.Time `json:"timestamp"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	DiskPercent   float64   `json:"disk_percent"`
	LoadAverage   float64   `json:"load_average"`
}

// Value returns the sample's reading for the given resource.
func (s Sample) Value(r Resource) (float64, bool) {
	switch r {
	case ResourceCPU:
		return s.CPUPercent, true
	case ResourceMemory:
		return s.MemoryPercent, true
	case ResourceDisk:
		return s.DiskPercent, true
	case ResourceLoad:
		return s.LoadAverage, true
	default:
		return 0, false
	}
}

// MetricsDocument is the persisted shape of the sample history.
type MetricsDocument struct {
	Metrics []Sample  `json:"metrics"`
	Updated time.Time `json:"updated"`
}

// Values extracts one resource's series from a window of samples,
// preserving chronological order.
func Values(samples []Sample, r Resource) []float64 {
	values := make([]float64, 0, len(samples))
	for _, s := range samples {
		if v, ok := s.Value(r); ok {
			values = append(values, v)
		}
	}
	return values
}
