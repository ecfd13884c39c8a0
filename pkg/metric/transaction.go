package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Transaction = (*transactionMetrics)(nil)

type transactionMetrics struct {
	duration *prometheus.HistogramVec
	finished *prometheus.CounterVec
	retries  *prometheus.CounterVec
}

func newTransactionMetrics(registry prometheus.Registerer) *transactionMetrics {
	m := &transactionMetrics{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: _namespace,
				Subsystem: "db",
				Name:      "transaction_duration_seconds",
				Help:      "Wall time of a unit of work including retries",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"operation"},
		),
		finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: _namespace,
				Subsystem: "db",
				Name:      "transactions_total",
				Help:      "Units of work by operation and outcome (committed, failed, exhausted, cancelled)",
			},
			[]string{"operation", "outcome"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: _namespace,
				Subsystem: "db",
				Name:      "transaction_retries_total",
				Help:      "Transaction retries by operation and cause",
			},
			[]string{"operation", "reason"},
		),
	}

	registry.MustRegister(m.duration, m.finished, m.retries)
	return m
}

func (m *transactionMetrics) Finished(operation, outcome string, duration time.Duration) {
	m.finished.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *transactionMetrics) Retried(operation, reason string) {
	m.retries.WithLabelValues(operation, reason).Inc()
}
