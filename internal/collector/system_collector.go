package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/OldStager01/resource-sentinel/internal/logger"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

// SystemCollector reads host metrics through gopsutil: CPU and memory
// percentages, disk usage for a configured mount point, and the
// 1-minute load average.
type SystemCollector struct {
	diskPath string
}

type SystemCollectorConfig struct {
	// DiskPath is the mount point measured for disk usage. Defaults
	// to the root filesystem.
	DiskPath string
}

func NewSystemCollector(cfg SystemCollectorConfig) *SystemCollector {
	if cfg.DiskPath == "" {
		cfg.DiskPath = "/"
	}
	return &SystemCollector{diskPath: cfg.DiskPath}
}

func (c *SystemCollector) Collect(ctx context.Context) (*models.Sample, error) {
	cpuPercents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, fmt.Errorf("%w: cpu: %v", ErrCollectionFailed, err)
	}
	if len(cpuPercents) == 0 {
		return nil, fmt.Errorf("%w: cpu: empty reading", ErrInvalidReading)
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: memory: %v", ErrCollectionFailed, err)
	}

	usage, err := disk.UsageWithContext(ctx, c.diskPath)
	if err != nil {
		return nil, fmt.Errorf("%w: disk %s: %v", ErrCollectionFailed, c.diskPath, err)
	}

	sample := &models.Sample{
		Timestamp:     time.Now(),
		CPUPercent:    cpuPercents[0],
		MemoryPercent: vm.UsedPercent,
		DiskPercent:   usage.UsedPercent,
	}

	// Load average is unavailable on some platforms; degrade to zero
	// rather than dropping the whole sample.
	if avg, err := load.AvgWithContext(ctx); err == nil {
		sample.LoadAverage = avg.Load1
	} else {
		logger.WithError(err).Debug("Load average unavailable")
	}

	return sample, nil
}

func (c *SystemCollector) HealthCheck(ctx context.Context) error {
	if _, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrCollectionFailed, err)
	}
	return nil
}

func (c *SystemCollector) Close() error {
	return nil
}
