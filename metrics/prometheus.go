package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PrometheusRecorder struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the collectors on reg, or on the default
// registerer when reg is nil.
func NewPrometheusRecorder(reg prometheus.Registerer) Recorder {
	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "merchant",
			Name:      "operations_total",
			Help:      "Flow operations by gateway and outcome",
		},
		[]string{"gateway", "operation", "outcome"},
	)

	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "merchant",
			Name:      "operation_latency_seconds",
			Help:      "Flow operation latency including the provider round trip",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"gateway", "operation"},
	)

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(operations, latency)

	return &PrometheusRecorder{
		operations: operations,
		latency:    latency,
	}
}

func (p *PrometheusRecorder) IncOperation(gateway, operation, outcome string) {
	p.operations.WithLabelValues(gateway, operation, outcome).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(gateway, operation string, d time.Duration) {
	p.latency.WithLabelValues(gateway, operation).Observe(d.Seconds())
}
