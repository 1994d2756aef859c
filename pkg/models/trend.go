package models

type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
	DirectionUnknown    Direction = "unknown"
)

// Trend describes resource behaviour over a window of samples. It is
// derived on demand and never persisted.
type Trend struct {
	Resource   Resource  `json:"resource"`
	Current    float64   `json:"current"`
	Average    float64   `json:"average"`
	Minimum    float64   `json:"minimum"`
	Maximum    float64   `json:"maximum"`
	Direction  Direction `json:"direction"`
	Volatility float64   `json:"volatility"`
	Slope      float64   `json:"slope"`
	DataPoints int       `json:"data_points"`
}
