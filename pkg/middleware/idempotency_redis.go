package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"washq/pkg/logger"
)

const redisIdempotencyPrefix = "idempotency:"

// RedisIdempotencyStore shares the idempotency cache across instances.
// Expiry is delegated to the key TTL, so there is no cleanup goroutine.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (s *RedisIdempotencyStore) Get(key string) (*CachedResponse, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.client.Get(ctx, redisIdempotencyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("Idempotency cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var cached CachedResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.log.Warn("Idempotency cache entry corrupt", "key", key, "error", err)
		return nil, false
	}

	return &cached, true
}

func (s *RedisIdempotencyStore) Set(key string, response *CachedResponse) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	response.CreatedAt = time.Now()
	raw, err := json.Marshal(response)
	if err != nil {
		s.log.Warn("Failed to encode idempotency cache entry", "key", key, "error", err)
		return
	}

	if err := s.client.Set(ctx, redisIdempotencyPrefix+key, raw, s.ttl).Err(); err != nil {
		s.log.Warn("Idempotency cache write failed", "key", key, "error", err)
	}
}

func (s *RedisIdempotencyStore) Stop() {
	// Connection lifecycle is owned by pkg/client.
}
