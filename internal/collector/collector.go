package collector

import (
	"context"
	"errors"

	"github.com/OldStager01/resource-sentinel/pkg/models"
)

var (
	ErrCollectionFailed = errors.New("metric collection failed")
	ErrInvalidReading   = errors.New("invalid reading from metrics source")
)

// Collector acquires one sample of raw resource readings. The engine
// treats a failed collection as "no new sample", never as fatal.
type Collector interface {
	// Collect reads current resource usage. Implementations should
	// honor ctx deadlines; acquisition must not block the engine.
	Collect(ctx context.Context) (*models.Sample, error)

	// HealthCheck verifies the collector can reach its source.
	HealthCheck(ctx context.Context) error

	// Close releases any resources held by the collector.
	Close() error
}

// ContainerSource provides per-container state from a container runtime.
// Acquisition is a collaborator concern; the engine only consumes the
// listing for overhead analysis.
type ContainerSource interface {
	List(ctx context.Context) ([]models.Container, error)
}

// StaticContainerSource serves a fixed listing, for deployments without
// a container runtime and for tests.
type StaticContainerSource struct {
	Containers []models.Container
}

func (s *StaticContainerSource) List(ctx context.Context) ([]models.Container, error) {
	return s.Containers, nil
}
