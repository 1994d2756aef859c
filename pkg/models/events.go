package models

import "time"

type EventType string

const (
	EventTypeSampleRecorded    EventType = "sample_recorded"
	EventTypeTrendAnalyzed     EventType = "trend_analyzed"
	EventTypePredictionMade    EventType = "prediction_made"
	EventTypeRecommendation    EventType = "recommendation"
	EventTypeAlertCreated      EventType = "alert_created"
	EventTypeAlertAcknowledged EventType = "alert_acknowledged"
	EventTypeAlertsCleared     EventType = "alerts_cleared"
	EventTypeCollectionFailed  EventType = "collection_failed"
	EventTypePersistenceFailed EventType = "persistence_failed"
	EventTypeError             EventType = "error"
)

type EventSeverity string

const (
	EventSeverityInfo     EventSeverity = "info"
	EventSeverityWarning  EventSeverity = "warning"
	EventSeverityCritical EventSeverity = "critical"
)

// Event represents an internal engine event.
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Severity  EventSeverity `json:"severity"`
	Resource  string        `json:"resource,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Message   string        `json:"message"`
	Data      interface{}   `json:"data,omitempty"`
	TraceID   string        `json:"trace_id,omitempty"`
}

func NewEvent(eventType EventType, resource, message string) *Event {
	return &Event{
		ID:        NewUUID(),
		Type:      eventType,
		Severity:  EventSeverityInfo,
		Resource:  resource,
		Timestamp: time.Now(),
		Message:   message,
	}
}

func (e *Event) WithSeverity(severity EventSeverity) *Event {
	e.Severity = severity
	return e
}

func (e *Event) WithData(data interface{}) *Event {
	e.Data = data
	return e
}

func (e *Event) WithTraceID(traceID string) *Event {
	e.TraceID = traceID
	return e
}
