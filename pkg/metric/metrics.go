package metric

import (
	"net/http"
	"time"
)

//go:generate mockgen -source=metrics.go -destination=mock/metrics.go -package=mock_metric

type (
	Factory interface {
		HTTP() HTTP
		Transaction() Transaction
		Cache() Cache
		Kafka() Kafka
		DLQ() DLQ
		Order() Order
		Document() Document
		Auth() Auth
		Handler() http.Handler
	}

	HTTP interface {
		Request(method, path string, status int, duration time.Duration)
		SlowRequest(method, path string, status int, duration time.Duration)
	}

	// Transaction reports units of work run by the transaction manager.
	Transaction interface {
		Finished(operation, outcome string, duration time.Duration)
		Retried(operation, reason string)
	}

	Cache interface {
		Lookup(cache string, hit bool)
		Eviction(cache, reason string)
		Size(cache string, size int)
	}

	// Kafka tracks the order intake consumer.
	Kafka interface {
		MessageProcessed(topic string, partition int)
		MessageFailed(topic, reason string)
		ConsumerGroupLag(topic string, partition int, lag int64)
	}

	// DLQ tracks dead-lettered drafts and their reprocessing.
	DLQ interface {
		Sent(originalTopic, reason string, retryCount int)
		SendFailed(originalTopic string)
		Reprocessed(outcome string)
	}

	// Order tracks persistence outcomes of sales orders.
	Order interface {
		Saved(source string)
		StoredLocally()
		Replayed(success bool)
		TotalsDrift(field string)
	}

	// Document tracks rendering of spreadsheets and PDFs.
	Document interface {
		Rendered(kind string, duration time.Duration)
		RenderFailed(kind string)
	}

	Auth interface {
		SignIn(result string)
	}
)
