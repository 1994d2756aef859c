package events

import (
	"context"

	"github.com/OldStager01/resource-sentinel/internal/logger"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

// EventLogger drains an event channel into the structured log.
type EventLogger struct {
	eventChan <-chan *models.Event
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewEventLogger(eventChan <-chan *models.Event) *EventLogger {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventLogger{
		eventChan: eventChan,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (l *EventLogger) Start() {
	go l.run()
}

func (l *EventLogger) Stop() {
	l.cancel()
}

func (l *EventLogger) run() {
	for {
		select {
		case <-l.ctx.Done():
			return
		case event, ok := <-l.eventChan:
			if !ok {
				return
			}
			l.logEvent(event)
		}
	}
}

func (l *EventLogger) logEvent(event *models.Event) {
	entry := logger.WithFields(map[string]interface{}{
		"event_type": event.Type,
		"resource":   event.Resource,
		"severity":   event.Severity,
	})
	if event.TraceID != "" {
		entry = entry.WithField("trace_id", event.TraceID)
	}

	switch event.Severity {
	case models.EventSeverityCritical:
		entry.Error(event.Message)
	case models.EventSeverityWarning:
		entry.Warn(event.Message)
	default:
		entry.Info(event.Message)
	}
}
