package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ DLQ = (*dlqMetrics)(nil)

type dlqMetrics struct {
	sent        *prometheus.CounterVec
	attempts    prometheus.Histogram
	sendFailed  *prometheus.CounterVec
	reprocessed *prometheus.CounterVec
}

func newDLQMetrics(registry prometheus.Registerer) *dlqMetrics {
	m := &dlqMetrics{
		sent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: _namespace,
				Subsystem: "dlq",
				Name:      "messages_sent_total",
				Help:      "Order drafts dead-lettered by source topic and reason",
			},
			[]string{"original_topic", "reason"},
		),
		attempts: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: _namespace,
				Subsystem: "dlq",
				Name:      "delivery_attempts",
				Help:      "Delivery attempts spent on a draft before it was dead-lettered",
				Buckets:   []float64{1, 2, 3, 4, 5, 7, 10},
			},
		),
		sendFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: _namespace,
				Subsystem: "dlq",
				Name:      "send_failures_total",
				Help:      "Drafts that could not be written to the dead letter topic",
			},
			[]string{"original_topic"},
		),
		reprocessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: _namespace,
				Subsystem: "dlq",
				Name:      "reprocessed_total",
				Help:      "Dead-lettered drafts handled by the reprocessor, by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(m.sent, m.attempts, m.sendFailed, m.reprocessed)
	return m
}

func (m *dlqMetrics) Sent(originalTopic, reason string, retryCount int) {
	m.sent.WithLabelValues(originalTopic, reason).Inc()
	m.attempts.Observe(float64(retryCount))
}

func (m *dlqMetrics) SendFailed(originalTopic string) {
	m.sendFailed.WithLabelValues(originalTopic).Inc()
}

func (m *dlqMetrics) Reprocessed(outcome string) {
	m.reprocessed.WithLabelValues(outcome).Inc()
}
