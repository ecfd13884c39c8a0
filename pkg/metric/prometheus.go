package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Every collector is registered under this namespace on a private registry.
const _namespace = "golden_orders"

var _ Factory = (*prometheusFactory)(nil)

type prometheusFactory struct {
	registry    *prometheus.Registry
	http        *httpMetrics
	transaction *transactionMetrics
	cache       *cacheMetrics
	kafka       *kafkaMetrics
	dlq         *dlqMetrics
	order       *orderMetrics
	document    *documentMetrics
	auth        *authMetrics
}

func NewFactory() Factory {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: _namespace}),
		collectors.NewBuildInfoCollector(),
	)

	return &prometheusFactory{
		registry:    registry,
		http:        newHTTPMetrics(registry),
		transaction: newTransactionMetrics(registry),
		cache:       newCacheMetrics(registry),
		kafka:       newKafkaMetrics(registry),
		dlq:         newDLQMetrics(registry),
		order:       newOrderMetrics(registry),
		document:    newDocumentMetrics(registry),
		auth:        newAuthMetrics(registry),
	}
}

func (f *prometheusFactory) HTTP() HTTP {
	return f.http
}

func (f *prometheusFactory) Transaction() Transaction {
	return f.transaction
}

func (f *prometheusFactory) Cache() Cache {
	return f.cache
}

func (f *prometheusFactory) Kafka() Kafka {
	return f.kafka
}

func (f *prometheusFactory) DLQ() DLQ {
	return f.dlq
}

func (f *prometheusFactory) Order() Order {
	return f.order
}

func (f *prometheusFactory) Document() Document {
	return f.document
}

func (f *prometheusFactory) Auth() Auth {
	return f.auth
}

func (f *prometheusFactory) Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(f.registry,
		promhttp.HandlerFor(f.registry, promhttp.HandlerOpts{
			Registry:          f.registry,
			EnableOpenMetrics: true,
		}),
	)
}
