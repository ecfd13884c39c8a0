package dlq

import (
	"fmt"
	"math/rand/v2"
	"time"
)

type Option func(*DLQ)

// WithRetryPolicy sets the backoff consumers apply before dead-lettering.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(d *DLQ) {
		d.policy = policy
	}
}

// Delay is the jittered wait before the given attempt (1-based, first retry is 2).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	backoff := p.BaseDelay
	for i := 2; i < attempt && backoff < p.MaxDelay; i++ {
		backoff *= _backoffMultiplier
	}
	backoff = min(backoff, p.MaxDelay)
	return backoff/2 + time.Duration(rand.Int64N(int64(backoff/2)+1))
}

func (p RetryPolicy) validate() error {
	switch {
	case p.MaxAttempts <= 0:
		return fmt.Errorf("max attempts must be positive, got %d", p.MaxAttempts)
	case p.BaseDelay <= 0:
		return fmt.Errorf("base delay must be positive, got %s", p.BaseDelay)
	case p.MaxDelay < p.BaseDelay:
		return fmt.Errorf("max delay %s is below base delay %s", p.MaxDelay, p.BaseDelay)
	}
	return nil
}
