package websocket

import (
	"encoding/json"
	"time"

	"github.com/OldStager01/resource-sentinel/pkg/models"
)

// Topics clients can subscribe to. A client with no subscriptions
// receives every topic.
const (
	TopicMetrics         = "metrics"
	TopicTrends          = "trends"
	TopicPredictions     = "predictions"
	TopicRecommendations = "recommendations"
	TopicAlerts          = "alerts"
	TopicErrors          = "errors"
)

// OutgoingMessage is the envelope for every broadcast.
type OutgoingMessage struct {
	Topic     string      `json:"topic"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Severity  string      `json:"severity,omitempty"`
	Resource  string      `json:"resource,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func (m *OutgoingMessage) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}

// topicFor maps an engine event to its broadcast topic. Events that
// return "" stay internal and are never broadcast.
func topicFor(eventType models.EventType) string {
	switch eventType {
	case models.EventTypeSampleRecorded:
		return TopicMetrics
	case models.EventTypeTrendAnalyzed:
		return TopicTrends
	case models.EventTypePredictionMade:
		return TopicPredictions
	case models.EventTypeRecommendation:
		return TopicRecommendations
	case models.EventTypeAlertCreated, models.EventTypeAlertAcknowledged, models.EventTypeAlertsCleared:
		return TopicAlerts
	case models.EventTypeCollectionFailed, models.EventTypePersistenceFailed, models.EventTypeError:
		return TopicErrors
	default:
		return ""
	}
}
