package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ Auth = (*authMetrics)(nil)

type authMetrics struct {
	signIns *prometheus.CounterVec
}

func newAuthMetrics(registry prometheus.Registerer) *authMetrics {
	signIns := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "auth_sign_in_total",
			Help:      "Total number of sign-in attempts by result",
		},
		[]string{"result"},
	)

	registry.MustRegister(signIns)

	return &authMetrics{signIns: signIns}
}

func (m *authMetrics) SignIn(result string) {
	m.signIns.WithLabelValues(result).Inc()
}
