package flash

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

const keyPrefix = "spa:flash:"

type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, f model.Flash) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal flash: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store flash: %w", err)
	}
	return nil
}

// Pop uses GETDEL so two concurrent reads cannot both receive the flash.
func (s *RedisStore) Pop(ctx context.Context, sessionID string) (*model.Flash, error) {
	data, err := s.client.GetDel(ctx, keyPrefix+sessionID).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read flash: %w", err)
	}

	var f model.Flash
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flash: %w", err)
	}
	return &f, nil
}
