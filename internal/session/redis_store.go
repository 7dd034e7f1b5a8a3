package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisNonceStore struct {
	client *redis.Client
	prefix string
}

// NewRedisNonceStore creates a Redis-backed nonce store.
func NewRedisNonceStore(client *redis.Client) *RedisNonceStore {
	return &RedisNonceStore{
		client: client,
		prefix: "oauth_state:",
	}
}

func (r *RedisNonceStore) key(nonce string) string {
	return r.prefix + nonce
}

func (r *RedisNonceStore) Consume(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	if nonce == "" {
		return false, fmt.Errorf("session: missing nonce")
	}
	if ttl <= 0 {
		return false, fmt.Errorf("session: ttl must be positive")
	}

	fresh, err := r.client.SetNX(ctx, r.key(nonce), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("session: consume nonce: %w", err)
	}
	return fresh, nil
}
