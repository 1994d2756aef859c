package models

import (
	"fmt"
	"time"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRanks = map[Severity]int{
	SeverityInfo:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the severity's position in the fixed ordering
// info < low < medium < high < critical. Unknown severities rank below info.
func (s Severity) Rank() int {
	if rank, ok := severityRanks[s]; ok {
		return rank
	}
	return -1
}

// Valid reports whether the severity is one of the known levels.
func (s Severity) Valid() bool {
	_, ok := severityRanks[s]
	return ok
}

// Alert is a deduplicated notification of a threshold breach. It is
// created by the registry, mutated only through acknowledgment, and
// removed only by an explicit clear.
type Alert struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Severity     Severity  `json:"severity"`
	Message      string    `json:"message"`
	Value        float64   `json:"value"`
	Threshold    float64   `json:"threshold"`
	Created      time.Time `json:"created"`
	Acknowledged bool      `json:"acknowledged"`
}

// NewAlert constructs an alert with an identifier derived from the type
// and creation time, plus a short random suffix so re-raising a type
// within the same second still yields a distinct ID.
func NewAlert(alertType string, severity Severity, message string, value, threshold float64) *Alert {
	now := time.Now()
	return &Alert{
		ID:        fmt.Sprintf("%s_%s_%s", alertType, now.Format("20060102_150405"), NewUUID()[:8]),
		Type:      alertType,
		Severity:  severity,
		Message:   message,
		Value:     value,
		Threshold: threshold,
		Created:   now,
	}
}

// AlertsDocument is the persisted shape of the alert registry.
type AlertsDocument struct {
	Alerts  []*Alert  `json:"alerts"`
	Updated time.Time `json:"updated"`
}
