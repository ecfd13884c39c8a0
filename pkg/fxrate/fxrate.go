package fxrate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"goldenorders/pkg/cache"
	"goldenorders/pkg/logger"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type quote struct {
	Code    string `json:"code"`
	CodeIn  string `json:"codein"`
	Bid     string `json:"bid"`
	Created string `json:"create_date"`
}

// Client fetches BRL quotes from AwesomeAPI. Quotes are cached per pair and
// concurrent misses for the same pair share one request.
type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.Cache[string, decimal.Decimal]
	ttl     time.Duration
	log     logger.Logger
	flight  singleflight.Group
}

func NewClient(
	baseURL string,
	timeout time.Duration,
	rates cache.Cache[string, decimal.Decimal],
	ttl time.Duration,
	log logger.Logger,
) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cache:   rates,
		ttl:     ttl,
		log:     log,
	}
}

// Rate returns the current bid for pair (e.g. "USD-BRL"). Any failure is
// logged and reported as false; callers fall back to a manual rate.
func (c *Client) Rate(ctx context.Context, pair string) (decimal.Decimal, bool) {
	const op = "fxrate.Rate"

	if rate, ok := c.cache.Get(pair); ok {
		return rate, true
	}

	v, err, _ := c.flight.Do(pair, func() (any, error) {
		rate, fetchErr := c.fetch(ctx, pair)
		if fetchErr != nil {
			return nil, fetchErr
		}
		c.cache.Put(pair, rate, c.ttl)
		return rate, nil
	})
	if err != nil {
		c.log.LogAttrs(ctx, logger.WarnLevel, "exchange rate unavailable",
			logger.String("op", op),
			logger.String("pair", pair),
			logger.Err(err),
		)
		return decimal.Decimal{}, false
	}

	return v.(decimal.Decimal), true
}

func (c *Client) fetch(ctx context.Context, pair string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+pair, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body map[string]quote
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode: %w", err)
	}

	q, ok := body[strings.ReplaceAll(pair, "-", "")]
	if !ok || q.Bid == "" {
		return decimal.Decimal{}, fmt.Errorf("no quote for %s", pair)
	}

	rate, err := decimal.NewFromString(q.Bid)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse bid %q: %w", q.Bid, err)
	}
	if !rate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("non-positive bid %s", rate)
	}
	return rate, nil
}
