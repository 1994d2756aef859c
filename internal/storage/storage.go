package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no document has been persisted yet. Callers treat
	// this as a cold start, not a failure.
	ErrNotFound = errors.New("document not found")

	// ErrCorrupt means a document exists but could not be decoded.
	ErrCorrupt = errors.New("document corrupt")
)

// Document names used by the engine.
const (
	MetricsDocument = "resource_metrics"
	AlertsDocument  = "alerts"
)

// Backend persists named JSON documents. Implementations must preserve
// the logical document shape so state can migrate between backends.
type Backend interface {
	Save(ctx context.Context, name string, doc interface{}) error
	Load(ctx context.Context, name string, into interface{}) error
	Close() error
}
