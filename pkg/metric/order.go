package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Order = (*orderMetrics)(nil)

type orderMetrics struct {
	saved       *prometheus.CounterVec
	storedLocal prometheus.Counter
	replayed    *prometheus.CounterVec
	drift       *prometheus.CounterVec
}

func newOrderMetrics(registry prometheus.Registerer) *orderMetrics {
	saved := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "orders_saved_total",
			Help:      "Total number of orders persisted by intake source",
		},
		[]string{"source"},
	)

	storedLocal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "orders_stored_locally_total",
			Help:      "Total number of orders kept in the local pending store after a database failure",
		},
	)

	replayed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "orders_replayed_total",
			Help:      "Total number of pending orders replayed into the database",
		},
		[]string{"success"},
	)

	drift := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "orders_totals_drift_total",
			Help:      "Total number of loaded orders whose persisted totals differ from recomputed ones",
		},
		[]string{"field"},
	)

	registry.MustRegister(saved, storedLocal, replayed, drift)

	return &orderMetrics{
		saved:       saved,
		storedLocal: storedLocal,
		replayed:    replayed,
		drift:       drift,
	}
}

func (m *orderMetrics) Saved(source string) {
	m.saved.WithLabelValues(source).Inc()
}

func (m *orderMetrics) StoredLocally() {
	m.storedLocal.Inc()
}

func (m *orderMetrics) Replayed(success bool) {
	m.replayed.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (m *orderMetrics) TotalsDrift(field string) {
	m.drift.WithLabelValues(field).Inc()
}
