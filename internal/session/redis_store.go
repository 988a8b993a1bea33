package session

import (
	"context"       // Context for Redis operations
	"encoding/json" // Record encoding
	"errors"        // Error matching
	"fmt"           // Error wrapping
	"time"          // TTL computation

	"github.com/redis/go-redis/v9" // Redis client

	"storefront/internal/domain"
)

// RedisStore keeps records in Redis; they expire with the record itself
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis backed store
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func redisKey(id string) string {
	return "session:" + id
}

// Load fetches a record by hashed id
func (s *RedisStore) Load(ctx context.Context, id string) (*domain.SessionRecord, error) {
	b, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}
	var rec domain.SessionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("session: decode record: %w", err)
	}
	return &rec, nil
}

// Save writes a record with a TTL matching its expiry
func (s *RedisStore) Save(ctx context.Context, rec *domain.SessionRecord) error {
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, rec.ID) // Already dead, never write it back
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session: encode record: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKey(rec.ID), b, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

// Delete removes a record
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}
