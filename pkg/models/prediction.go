package models

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Prediction is a short-horizon forecast for a single resource.
type Prediction struct {
	Resource     Resource `json:"resource"`
	CurrentValue float64  `json:"current_value"`
	Forecast7d   float64  `json:"forecast_7d"`
	Forecast30d  float64  `json:"forecast_30d"`
	Threshold    float64  `json:"threshold"`
	// TimeToThreshold is the estimated hours until the resource crosses
	// its threshold. Nil when usage is flat, falling, or already past it.
	TimeToThreshold *float64   `json:"time_to_threshold_hours,omitempty"`
	Confidence      Confidence `json:"confidence"`
	Stable          bool       `json:"stable"`
}
