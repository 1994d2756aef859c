package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/OldStager01/resource-sentinel/internal/logger"
	"github.com/OldStager01/resource-sentinel/internal/simulate"
	"github.com/OldStager01/resource-sentinel/internal/storage"
	"github.com/OldStager01/resource-sentinel/internal/store"
)

// seed generates synthetic sample history so trends and forecasts have
// data to work with before the collector has run for long.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir := flag.String("data-dir", "./data", "directory for the file storage backend")
	pattern := flag.String("pattern", "daily", "load pattern: steady, daily, weekly, random, gradual_rise, sine")
	hours := flag.Int("hours", 168, "hours of history to generate")
	stepMinutes := flag.Int("step", 60, "minutes between samples")
	baseCPU := flag.Float64("cpu", 45, "base CPU percent")
	baseMemory := flag.Float64("memory", 55, "base memory percent")
	baseDisk := flag.Float64("disk", 40, "base disk percent")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger.Setup(*logLevel, "development")

	backend, err := storage.NewFileBackend(*dataDir)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer backend.Close()

	generator := simulate.NewGenerator(simulate.GeneratorConfig{
		BaseCPU:    *baseCPU,
		BaseMemory: *baseMemory,
		BaseDisk:   *baseDisk,
		Pattern:    simulate.ParsePattern(*pattern),
	})

	window := time.Duration(*hours) * time.Hour
	step := time.Duration(*stepMinutes) * time.Minute
	samples := generator.History(window, step)

	sampleStore := store.New(backend, store.Config{})
	for _, sample := range samples {
		sampleStore.Record(sample)
	}

	if err := sampleStore.PersistError(); err != nil {
		return fmt.Errorf("failed to persist samples: %w", err)
	}

	logger.Infof("Seeded %d samples over %d hours (pattern: %s) into %s",
		len(samples), *hours, *pattern, *dataDir)
	return nil
}
