package fxrate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mock_cache "goldenorders/pkg/cache/mock"
	"goldenorders/pkg/fxrate"
	mock_logger "goldenorders/pkg/logger/mock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestClient_Rate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/last/USD-BRL":
			_, _ = w.Write([]byte(`{"USDBRL":{"code":"USD","codein":"BRL","bid":"5.4321"}}`))
		case "/last/EUR-BRL":
			_, _ = w.Write([]byte(`{"EURBRL":{"code":"EUR","codein":"BRL","bid":"abc"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	testCases := []struct {
		desc     string
		pair     string
		mocks    func(c *mock_cache.MockCache[string, decimal.Decimal], l *mock_logger.MockLogger)
		expected string
		ok       bool
	}{
		{
			desc: "cache hit skips the network",
			pair: "USD-BRL",
			mocks: func(c *mock_cache.MockCache[string, decimal.Decimal], _ *mock_logger.MockLogger) {
				c.EXPECT().Get("USD-BRL").Return(decimal.RequireFromString("5.1"), true)
			},
			expected: "5.1",
			ok:       true,
		},
		{
			desc: "fetches and caches",
			pair: "USD-BRL",
			mocks: func(c *mock_cache.MockCache[string, decimal.Decimal], _ *mock_logger.MockLogger) {
				c.EXPECT().Get("USD-BRL").Return(decimal.Decimal{}, false)
				c.EXPECT().Put("USD-BRL", gomock.Any(), 10*time.Minute)
			},
			expected: "5.4321",
			ok:       true,
		},
		{
			desc: "bad bid is not fatal",
			pair: "EUR-BRL",
			mocks: func(c *mock_cache.MockCache[string, decimal.Decimal], l *mock_logger.MockLogger) {
				c.EXPECT().Get("EUR-BRL").Return(decimal.Decimal{}, false)
				l.EXPECT().LogAttrs(gomock.Any(), gomock.Any(), "exchange rate unavailable", gomock.Any()).Times(1)
			},
		},
		{
			desc: "unknown pair is not fatal",
			pair: "GBP-BRL",
			mocks: func(c *mock_cache.MockCache[string, decimal.Decimal], l *mock_logger.MockLogger) {
				c.EXPECT().Get("GBP-BRL").Return(decimal.Decimal{}, false)
				l.EXPECT().LogAttrs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			rates := mock_cache.NewMockCache[string, decimal.Decimal](ctrl)
			log := mock_logger.NewMockLogger(ctrl)
			tc.mocks(rates, log)

			client := fxrate.NewClient(srv.URL+"/last", time.Second, rates, 10*time.Minute, log)

			got, ok := client.Rate(context.Background(), tc.pair)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), "got %s", got)
			}
		})
	}
}
