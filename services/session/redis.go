// File: services/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spacetact/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "chat:session:"

// RedisStore shares session state between server replicas. The model handle
// inside a state only resolves on the replica that created it; elsewhere the
// gateway starts a fresh chat.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var state models.SessionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, state *models.SessionState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, sessionKeyPrefix+state.SessionID, b, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
