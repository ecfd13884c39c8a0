package transaction

import (
	"fmt"
	"time"
)

type Option func(*manager)

// MaxAttempts bounds how many times a unit of work runs, the first try included.
func MaxAttempts(attempts int) Option {
	return func(m *manager) {
		m.maxAttempts = attempts
	}
}

// Backoff sets the jittered delay window between attempts. The window starts
// at base and doubles up to ceiling.
func Backoff(base, ceiling time.Duration) Option {
	return func(m *manager) {
		m.baseRetryDelay = base
		m.maxRetryDelay = ceiling
	}
}

func (m *manager) validate() error {
	switch {
	case m.maxAttempts <= 0:
		return fmt.Errorf("max attempts must be positive, got %d", m.maxAttempts)
	case m.baseRetryDelay <= 0:
		return fmt.Errorf("base retry delay must be positive, got %s", m.baseRetryDelay)
	case m.maxRetryDelay < m.baseRetryDelay:
		return fmt.Errorf("max retry delay %s is below base retry delay %s", m.maxRetryDelay, m.baseRetryDelay)
	}
	return nil
}
