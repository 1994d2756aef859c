package alerts

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/OldStager01/resource-sentinel/internal/logger"
	"github.com/OldStager01/resource-sentinel/internal/storage"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

const persistTimeout = 5 * time.Second

// Registry owns the alert lifecycle: created, optionally acknowledged,
// optionally cleared. There is no transition back from acknowledged.
// At most one unacknowledged alert exists per type at any time.
type Registry struct {
	backend storage.Backend

	mu          sync.Mutex
	alerts      []*models.Alert
	lastSaveErr error
}

// NewRegistry loads persisted alerts if any exist. A load failure leaves
// the registry empty rather than failing construction.
func NewRegistry(backend storage.Backend) *Registry {
	r := &Registry{backend: backend}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	var doc models.AlertsDocument
	err := backend.Load(ctx, storage.AlertsDocument, &doc)
	switch {
	case err == nil:
		r.alerts = doc.Alerts
	case errors.Is(err, storage.ErrNotFound):
		// Cold start.
	default:
		logger.WithError(err).Warn("Failed to load alerts, starting empty")
	}

	return r
}

// Create registers a new alert unless an unacknowledged alert of the
// same type already exists, in which case that alert is returned
// unchanged and created is false. The existing alert's message, value,
// and severity are not updated.
func (r *Registry) Create(alertType string, severity models.Severity, message string, value, threshold float64) (alert models.Alert, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.alerts {
		if a.Type == alertType && !a.Acknowledged {
			return *a, false
		}
	}

	a := models.NewAlert(alertType, severity, message, value, threshold)
	r.alerts = append(r.alerts, a)
	r.persistLocked()

	logger.WithAlert(a.ID).Infof("Alert created: %s (%s)", a.Type, a.Severity)
	return *a, true
}

// Acknowledge marks the alert with the given id as acknowledged and
// reports whether a match was found. Persists only on success.
func (r *Registry) Acknowledge(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.alerts {
		if a.ID == id {
			a.Acknowledged = true
			r.persistLocked()
			return true
		}
	}
	return false
}

// Active returns unacknowledged alerts, optionally filtered to severity
// >= minSeverity (pass an empty severity to disable filtering), sorted
// most severe and most recent first.
func (r *Registry) Active(minSeverity models.Severity) []models.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()

	minRank := -1
	if minSeverity != "" {
		minRank = minSeverity.Rank()
	}

	out := make([]models.Alert, 0, len(r.alerts))
	for _, a := range r.alerts {
		if a.Acknowledged {
			continue
		}
		if a.Severity.Rank() < minRank {
			continue
		}
		out = append(out, *a)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Severity.Rank() != out[j].Severity.Rank() {
			return out[i].Severity.Rank() > out[j].Severity.Rank()
		}
		return out[i].Created.After(out[j].Created)
	})

	return out
}

// ClearAcknowledged removes all acknowledged alerts and returns how many
// were removed. Persists only when something was removed.
func (r *Registry) ClearAcknowledged() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.alerts[:0]
	for _, a := range r.alerts {
		if !a.Acknowledged {
			kept = append(kept, a)
		}
	}

	removed := len(r.alerts) - len(kept)
	r.alerts = kept

	if removed > 0 {
		r.persistLocked()
	}
	return removed
}

// ClearOlderThan removes alerts created before now-d regardless of
// acknowledgment, returning how many were removed.
func (r *Registry) ClearOlderThan(d time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-d)

	kept := r.alerts[:0]
	for _, a := range r.alerts {
		if a.Created.After(cutoff) {
			kept = append(kept, a)
		}
	}

	removed := len(r.alerts) - len(kept)
	r.alerts = kept

	if removed > 0 {
		r.persistLocked()
	}
	return removed
}

// Len returns the total number of alerts, acknowledged included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}

// PersistError returns the most recent persistence failure, or nil.
func (r *Registry) PersistError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSaveErr
}

func (r *Registry) persistLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	doc := models.AlertsDocument{
		Alerts:  r.alerts,
		Updated: time.Now(),
	}

	if err := r.backend.Save(ctx, storage.AlertsDocument, doc); err != nil {
		r.lastSaveErr = err
		logger.WithError(err).Warn("Failed to persist alerts")
		return
	}
	r.lastSaveErr = nil
}
