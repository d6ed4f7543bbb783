package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records storefront engine activity.
type EngineMetrics struct {
	operations   *prometheus.CounterVec
	pushSuccess  *prometheus.CounterVec
	pushFailure  *prometheus.CounterVec
	pushDuration *prometheus.HistogramVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_operations_total",
		Help: "Engine operations by engine and operation name.",
	}, []string{"engine", "op"})
	pushSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_push_success_total",
		Help: "Successful remote store pushes.",
	}, []string{"event"})
	pushFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_push_failure_total",
		Help: "Remote store pushes abandoned after retries.",
	}, []string{"event"})
	pushDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remote_push_duration_seconds",
		Help:    "Duration of remote store pushes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"event"})
	reg.MustRegister(operations, pushSuccess, pushFailure, pushDuration)
	return &EngineMetrics{
		operations:   operations,
		pushSuccess:  pushSuccess,
		pushFailure:  pushFailure,
		pushDuration: pushDuration,
	}
}

// IncOperation counts one engine operation.
func (m *EngineMetrics) IncOperation(engine, op string) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(engine), normalizeLabel(op)).Inc()
}

// IncPushSuccess counts one completed remote push.
func (m *EngineMetrics) IncPushSuccess(event string) {
	if m == nil || m.pushSuccess == nil {
		return
	}
	m.pushSuccess.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncPushFailure counts one abandoned remote push.
func (m *EngineMetrics) IncPushFailure(event string) {
	if m == nil || m.pushFailure == nil {
		return
	}
	m.pushFailure.WithLabelValues(normalizeLabel(event)).Inc()
}

// ObservePushDuration records how long a remote push took.
func (m *EngineMetrics) ObservePushDuration(event string, duration time.Duration) {
	if m == nil || m.pushDuration == nil {
		return
	}
	m.pushDuration.WithLabelValues(normalizeLabel(event)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
