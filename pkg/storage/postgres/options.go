package postgres

import (
	"fmt"
	"time"
)

type Option func(*Postgres)

func MaxPoolSize(size int32) Option {
	return func(p *Postgres) {
		p.maxPoolSize = size
	}
}

// ConnectRetry bounds startup dialing: up to attempts tries with a jittered
// backoff that starts at base and doubles up to ceiling.
func ConnectRetry(attempts int, base, ceiling time.Duration) Option {
	return func(p *Postgres) {
		p.connAttempts = attempts
		p.baseRetryDelay = base
		p.maxRetryDelay = ceiling
	}
}

// ApplicationName tags server-side sessions so they can be told apart in pg_stat_activity.
func ApplicationName(name string) Option {
	return func(p *Postgres) {
		p.appName = name
	}
}

func (p *Postgres) validate() error {
	switch {
	case p.maxPoolSize <= 0:
		return fmt.Errorf("max pool size must be positive, got %d", p.maxPoolSize)
	case p.connAttempts <= 0:
		return fmt.Errorf("connect attempts must be positive, got %d", p.connAttempts)
	case p.baseRetryDelay <= 0:
		return fmt.Errorf("base retry delay must be positive, got %s", p.baseRetryDelay)
	case p.maxRetryDelay < p.baseRetryDelay:
		return fmt.Errorf("max retry delay %s is below base retry delay %s", p.maxRetryDelay, p.baseRetryDelay)
	}
	return nil
}
