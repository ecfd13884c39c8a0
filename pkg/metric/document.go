package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Document = (*documentMetrics)(nil)

type documentMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func newDocumentMetrics(registry prometheus.Registerer) *documentMetrics {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: _namespace,
			Name:      "document_render_duration_seconds",
			Help:      "Duration of document rendering in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"kind"},
	)

	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "document_render_failures_total",
			Help:      "Total number of failed document renders",
		},
		[]string{"kind"},
	)

	registry.MustRegister(duration, failures)

	return &documentMetrics{
		duration: duration,
		failures: failures,
	}
}

func (m *documentMetrics) Rendered(kind string, duration time.Duration) {
	m.duration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *documentMetrics) RenderFailed(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}
