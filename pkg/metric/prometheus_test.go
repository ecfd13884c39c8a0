package metric_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"goldenorders/pkg/metric"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_Handler(t *testing.T) {
	t.Parallel()

	f := metric.NewFactory()

	f.HTTP().Request(http.MethodGet, "/api/v1/orders", http.StatusServiceUnavailable, 10*time.Millisecond)
	f.HTTP().Request(http.MethodGet, "/api/v1/orders", http.StatusNotFound, 10*time.Millisecond)
	f.Order().Saved("http")
	f.Order().StoredLocally()
	f.Order().Replayed(true)
	f.Order().TotalsDrift("total_in_brl")
	f.Document().Rendered("pdf", 20*time.Millisecond)
	f.Document().RenderFailed("xlsx")
	f.Auth().SignIn("ok")
	f.Kafka().MessageProcessed("orders", 12)
	f.Kafka().MessageFailed("orders", "rejected")
	f.Kafka().ConsumerGroupLag("orders", 0, -1)
	f.DLQ().Sent("orders", "retry_limit_exceeded", 3)
	f.DLQ().Reprocessed("saved")
	f.Cache().Lookup("orders", true)
	f.Cache().Lookup("orders", false)
	f.Transaction().Finished("SaveOrder", "committed", 5*time.Millisecond)
	f.Transaction().Retried("SaveOrder", "deadlock")

	srv := httptest.NewServer(f.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	for _, want := range []string{
		`golden_orders_http_requests_total{method="GET",path="/api/v1/orders",status="5xx"} 1`,
		`golden_orders_http_requests_total{method="GET",path="/api/v1/orders",status="4xx"} 1`,
		`golden_orders_orders_saved_total{source="http"} 1`,
		`golden_orders_orders_stored_locally_total 1`,
		`golden_orders_orders_replayed_total{success="true"} 1`,
		`golden_orders_orders_totals_drift_total{field="total_in_brl"} 1`,
		`golden_orders_document_render_failures_total{kind="xlsx"} 1`,
		`golden_orders_auth_sign_in_total{result="ok"} 1`,
		`golden_orders_kafka_messages_consumed_total{partition="12",topic="orders"} 1`,
		`golden_orders_kafka_messages_failed_total{reason="rejected",topic="orders"} 1`,
		`golden_orders_kafka_consumer_lag{partition="0",topic="orders"} 0`,
		`golden_orders_dlq_messages_sent_total{original_topic="orders",reason="retry_limit_exceeded"} 1`,
		`golden_orders_dlq_reprocessed_total{outcome="saved"} 1`,
		`golden_orders_cache_lookups_total{cache="orders",result="hit"} 1`,
		`golden_orders_cache_lookups_total{cache="orders",result="miss"} 1`,
		`golden_orders_db_transactions_total{operation="SaveOrder",outcome="committed"} 1`,
		`golden_orders_db_transaction_retries_total{operation="SaveOrder",reason="deadlock"} 1`,
		`go_goroutines`,
		`promhttp_metric_handler_requests_in_flight 1`,
	} {
		assert.Contains(t, out, want)
	}
}
