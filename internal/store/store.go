package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/OldStager01/resource-sentinel/internal/logger"
	"github.com/OldStager01/resource-sentinel/internal/storage"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

const (
	defaultHighWaterMark = 2000
	defaultRetainCount   = 1000
	persistTimeout       = 5 * time.Second
)

type Config struct {
	// HighWaterMark is the history length that triggers truncation.
	HighWaterMark int
	// RetainCount is how many of the most recent samples survive it.
	RetainCount int
}

// Store is the append-only, size-bounded sample history. In-memory state
// is authoritative; persistence is best-effort and never surfaces to the
// caller, but the last failure is kept for inspection.
type Store struct {
	backend storage.Backend
	cfg     Config

	mu          sync.Mutex
	history     []models.Sample
	loadTried   bool
	lastSaveErr error
}

func New(backend storage.Backend, cfg Config) *Store {
	if cfg.HighWaterMark <= 0 {
		cfg.HighWaterMark = defaultHighWaterMark
	}
	if cfg.RetainCount <= 0 || cfg.RetainCount > cfg.HighWaterMark {
		cfg.RetainCount = defaultRetainCount
	}

	return &Store{
		backend: backend,
		cfg:     cfg,
	}
}

// Record appends a sample, enforces the size bound, and persists the
// history. Persistence failures are absorbed; in-memory state remains
// authoritative for the process lifetime.
func (s *Store) Record(sample models.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked()

	s.history = append(s.history, sample)

	if len(s.history) > s.cfg.HighWaterMark {
		tail := s.history[len(s.history)-s.cfg.RetainCount:]
		s.history = append(make([]models.Sample, 0, s.cfg.RetainCount), tail...)
	}

	s.persistLocked()
}

// All returns a copy of the full history, oldest first.
func (s *Store) All() []models.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked()

	out := make([]models.Sample, len(s.history))
	copy(out, s.history)
	return out
}

// Window returns the samples recorded within the last d, oldest first.
func (s *Store) Window(d time.Duration) []models.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked()

	cutoff := time.Now().Add(-d)
	var out []models.Sample
	for _, sample := range s.history {
		if sample.Timestamp.After(cutoff) {
			out = append(out, sample)
		}
	}
	return out
}

// Recent returns up to the n most recent samples, oldest first.
func (s *Store) Recent(n int) []models.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked()

	if n <= 0 || len(s.history) == 0 {
		return nil
	}
	if n > len(s.history) {
		n = len(s.history)
	}

	out := make([]models.Sample, n)
	copy(out, s.history[len(s.history)-n:])
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked()
	return len(s.history)
}

// PersistError returns the most recent persistence failure, or nil. It
// resets on the next successful write.
func (s *Store) PersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// loadLocked hydrates the history from durable storage once, on first
// access with an empty in-memory history. It never merges with existing
// in-memory data. Callers must hold s.mu.
func (s *Store) loadLocked() {
	if s.loadTried || len(s.history) > 0 {
		return
	}
	s.loadTried = true

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	var doc models.MetricsDocument
	err := s.backend.Load(ctx, storage.MetricsDocument, &doc)
	switch {
	case err == nil:
		s.history = doc.Metrics
		logger.Debugf("Loaded %d samples from storage", len(s.history))
	case errors.Is(err, storage.ErrNotFound):
		// Cold start, nothing persisted yet.
	default:
		logger.WithError(err).Warn("Failed to load sample history, starting empty")
	}
}

func (s *Store) persistLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	doc := models.MetricsDocument{
		Metrics: s.history,
		Updated: time.Now(),
	}

	if err := s.backend.Save(ctx, storage.MetricsDocument, doc); err != nil {
		s.lastSaveErr = err
		logger.WithError(err).Warn("Failed to persist sample history")
		return
	}
	s.lastSaveErr = nil
}
