package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds process-level counters and gauges exposed in Prometheus
// text format.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	samplesRecorded   int64
	collectionsTotal  int64
	collectionErrors  int64
	alertsCreated     map[string]int64 // severity -> count
	alertsAcked       int64
	persistenceErrors int64

	// Gauges
	resourceUsage       map[string]float64 // resource -> last reading
	activeAlerts        int
	circuitBreakerState map[string]int // 0=closed, 1=open, 2=half-open

	// Last observed collection latency
	collectionLatency time.Duration
}

var (
	instance *Metrics
	once     sync.Once
)

func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			alertsCreated:       make(map[string]int64),
			resourceUsage:       make(map[string]float64),
			circuitBreakerState: make(map[string]int),
		}
	})
	return instance
}

func (m *Metrics) IncSamplesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samplesRecorded++
}

func (m *Metrics) IncCollections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectionsTotal++
}

func (m *Metrics) IncCollectionErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectionErrors++
}

func (m *Metrics) IncAlertsCreated(severity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alertsCreated[severity]++
}

func (m *Metrics) IncAlertsAcknowledged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alertsAcked++
}

func (m *Metrics) IncPersistenceErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistenceErrors++
}

func (m *Metrics) SetResourceUsage(resource string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resourceUsage[resource] = value
}

func (m *Metrics) SetActiveAlerts(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeAlerts = count
}

func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.circuitBreakerState[name] = state
}

func (m *Metrics) SetCollectionLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectionLatency = d
}

func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		writeMetric(w, "sentinel_samples_recorded_total", nil, float64(m.samplesRecorded))
		writeMetric(w, "sentinel_collections_total", nil, float64(m.collectionsTotal))
		writeMetric(w, "sentinel_collection_errors_total", nil, float64(m.collectionErrors))
		writeMetric(w, "sentinel_alerts_acknowledged_total", nil, float64(m.alertsAcked))
		writeMetric(w, "sentinel_persistence_errors_total", nil, float64(m.persistenceErrors))

		for severity, count := range m.alertsCreated {
			writeMetric(w, "sentinel_alerts_created_total", map[string]string{"severity": severity}, float64(count))
		}

		for resource, value := range m.resourceUsage {
			writeMetric(w, "sentinel_resource_usage", map[string]string{"resource": resource}, value)
		}

		writeMetric(w, "sentinel_active_alerts", nil, float64(m.activeAlerts))

		for name, state := range m.circuitBreakerState {
			writeMetric(w, "sentinel_circuit_breaker_state", map[string]string{"name": name}, float64(state))
		}

		writeMetric(w, "sentinel_collection_latency_ms", nil, float64(m.collectionLatency.Milliseconds()))
	})
}

func writeMetric(w http.ResponseWriter, name string, labels map[string]string, value float64) {
	labelStr := ""
	if len(labels) > 0 {
		labelStr = "{"
		first := true
		for k, v := range labels {
			if !first {
				labelStr += ","
			}
			labelStr += k + `="` + v + `"`
			first = false
		}
		labelStr += "}"
	}
	w.Write([]byte(name + labelStr + " " + strconv.FormatFloat(value, 'f', -1, 64) + "\n"))
}
