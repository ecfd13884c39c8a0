package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Kafka = (*kafkaMetrics)(nil)

type kafkaMetrics struct {
	consumed *prometheus.CounterVec
	failed   *prometheus.CounterVec
	lag      *prometheus.GaugeVec
}

func newKafkaMetrics(registry prometheus.Registerer) *kafkaMetrics {
	m := &kafkaMetrics{
		consumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: _namespace,
				Subsystem: "kafka",
				Name:      "messages_consumed_total",
				Help:      "Order drafts read from the intake topic",
			},
			[]string{"topic", "partition"},
		),
		failed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: _namespace,
				Subsystem: "kafka",
				Name:      "messages_failed_total",
				Help:      "Order drafts that could not be saved, by reason (rejected, retry_limit_exceeded)",
			},
			[]string{"topic", "reason"},
		),
		lag: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: _namespace,
				Subsystem: "kafka",
				Name:      "consumer_lag",
				Help:      "Messages between the last read offset and the partition high water mark",
			},
			[]string{"topic", "partition"},
		),
	}

	registry.MustRegister(m.consumed, m.failed, m.lag)
	return m
}

func (m *kafkaMetrics) MessageProcessed(topic string, partition int) {
	m.consumed.WithLabelValues(topic, strconv.Itoa(partition)).Inc()
}

func (m *kafkaMetrics) MessageFailed(topic, reason string) {
	m.failed.WithLabelValues(topic, reason).Inc()
}

func (m *kafkaMetrics) ConsumerGroupLag(topic string, partition int, lag int64) {
	m.lag.WithLabelValues(topic, strconv.Itoa(partition)).Set(float64(max(lag, 0)))
}
