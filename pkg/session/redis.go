package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store tracks issued session token ids. A token is valid only while its id
// is registered.
type Store struct {
	client *redis.Client
	prefix string
}

func NewStore(addr, password string, db int, prefix string) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		prefix: prefix,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("session.Ping: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Register(ctx context.Context, tokenID, email string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(tokenID), email, ttl).Err(); err != nil {
		return fmt.Errorf("session.Register: %w", err)
	}
	return nil
}

// Active returns the email a token id was registered for, or false when it
// was revoked or has expired.
func (s *Store) Active(ctx context.Context, tokenID string) (string, bool, error) {
	email, err := s.client.Get(ctx, s.key(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session.Active: %w", err)
	}
	return email, true, nil
}

func (s *Store) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, s.key(tokenID)).Err(); err != nil {
		return fmt.Errorf("session.Revoke: %w", err)
	}
	return nil
}

func (s *Store) key(tokenID string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, tokenID)
}
