package events

import (
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

// Publisher wraps the bus with typed constructors for engine events.
type Publisher struct {
	bus     *EventBus
	traceID string
}

func NewPublisher(bus *EventBus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) WithTraceID(traceID string) *Publisher {
	return &Publisher{bus: p.bus, traceID: traceID}
}

func (p *Publisher) publish(event *models.Event) {
	if p.traceID != "" {
		event.TraceID = p.traceID
	}
	p.bus.Publish(event)
}

func (p *Publisher) SampleRecorded(sample *models.Sample) {
	event := models.NewEvent(models.EventTypeSampleRecorded, "", "Sample recorded").
		WithData(sample)
	p.publish(event)
}

func (p *Publisher) TrendAnalyzed(trend *models.Trend) {
	event := models.NewEvent(models.EventTypeTrendAnalyzed, string(trend.Resource), "Trend analyzed").
		WithData(trend)
	p.publish(event)
}

func (p *Publisher) PredictionMade(prediction *models.Prediction) {
	event := models.NewEvent(models.EventTypePredictionMade, string(prediction.Resource), "Prediction made").
		WithData(prediction)

	if prediction.TimeToThreshold != nil {
		event.WithSeverity(models.EventSeverityWarning)
	}

	p.publish(event)
}

func (p *Publisher) Recommendations(recs []models.Recommendation) {
	if len(recs) == 0 {
		return
	}
	event := models.NewEvent(models.EventTypeRecommendation, "", "Recommendations generated").
		WithData(recs)
	p.publish(event)
}

func (p *Publisher) AlertCreated(alert models.Alert) {
	event := models.NewEvent(models.EventTypeAlertCreated, alert.Type, alert.Message).
		WithData(alert)

	switch alert.Severity {
	case models.SeverityCritical:
		event.WithSeverity(models.EventSeverityCritical)
	case models.SeverityHigh, models.SeverityMedium:
		event.WithSeverity(models.EventSeverityWarning)
	}

	p.publish(event)
}

func (p *Publisher) AlertAcknowledged(id string) {
	event := models.NewEvent(models.EventTypeAlertAcknowledged, "", "Alert acknowledged: "+id)
	p.publish(event)
}

func (p *Publisher) AlertsCleared(count int, reason string) {
	event := models.NewEvent(models.EventTypeAlertsCleared, "", "Alerts cleared: "+reason).
		WithData(map[string]interface{}{"count": count, "reason": reason})
	p.publish(event)
}

func (p *Publisher) CollectionFailed(err error) {
	event := models.NewEvent(models.EventTypeCollectionFailed, "", "Metric collection failed").
		WithSeverity(models.EventSeverityWarning).
		WithData(map[string]interface{}{"error": err.Error()})
	p.publish(event)
}

func (p *Publisher) PersistenceFailed(component string, err error) {
	event := models.NewEvent(models.EventTypePersistenceFailed, "", "Persistence failed: "+component).
		WithSeverity(models.EventSeverityWarning).
		WithData(map[string]interface{}{"component": component, "error": err.Error()})
	p.publish(event)
}

func (p *Publisher) Error(message string, err error) {
	event := models.NewEvent(models.EventTypeError, "", message).
		WithSeverity(models.EventSeverityCritical).
		WithData(map[string]interface{}{"error": err.Error()})
	p.publish(event)
}
