package postgres

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"net/url"
	"time"

	"goldenorders/internal/config"
	"goldenorders/pkg/logger"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	_defaultMaxPoolSize    = 20
	_defaultConnAttempts   = 5
	_defaultBaseRetryDelay = 100 * time.Millisecond
	_defaultMaxRetryDelay  = 5 * time.Second

	_backoffMultiplier = 2
)

// Postgres bundles the pgx pool with a dollar-placeholder squirrel builder.
type Postgres struct {
	Builder squirrel.StatementBuilderType
	Pool    *pgxpool.Pool

	appName        string
	connAttempts   int
	baseRetryDelay time.Duration
	maxRetryDelay  time.Duration
	maxPoolSize    int32
}

// NewPostgres dials until the server answers a ping, the attempts run out or
// ctx is done.
func NewPostgres(ctx context.Context, cfg *config.Postgres, log logger.Logger, opts ...Option) (*Postgres, error) {
	const op = "storage.postgres.NewPostgres"

	pg := &Postgres{
		connAttempts:   _defaultConnAttempts,
		baseRetryDelay: _defaultBaseRetryDelay,
		maxRetryDelay:  _defaultMaxRetryDelay,
		maxPoolSize:    _defaultMaxPoolSize,
	}
	for _, opt := range opts {
		opt(pg)
	}
	if err := pg.validate(); err != nil {
		return nil, fmt.Errorf("%s: validation: %w", op, err)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: parse pool config: %w", op, err)
	}
	poolConfig.MaxConns = pg.maxPoolSize
	if pg.appName != "" {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = pg.appName
	}

	pg.Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	backoff := pg.baseRetryDelay
	for attempt := 1; ; attempt++ {
		if err = pg.connect(ctx, poolConfig); err == nil {
			return pg, nil
		}
		if attempt == pg.connAttempts {
			return nil, fmt.Errorf("%s: after %d attempts: %w", op, attempt, err)
		}

		delay := min(time.Duration(rand.Int64N(int64(backoff*_backoffMultiplier))), pg.maxRetryDelay)
		log.Warnw("postgres connection attempt failed",
			"operation", op,
			"host", cfg.Host,
			"attempt", attempt,
			"retry_after", delay.String(),
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		}
		backoff = min(backoff*_backoffMultiplier, pg.maxRetryDelay)
	}
}

func (p *Postgres) connect(ctx context.Context, poolConfig *pgxpool.Config) error {
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}
	p.Pool = pool
	return nil
}

func dsn(cfg *config.Postgres) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// Ping checks that a pooled connection can reach the server.
func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("storage.postgres.Ping: %w", err)
	}
	return nil
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}
