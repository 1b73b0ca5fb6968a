package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "travel-agent:session:"

// RedisStore keeps session contexts in Redis so multiple processes can share
// them. Updates are read-modify-write without locking: the contract is
// last-write-wins per field, no merging.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Context, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewContext(), nil
	}
	if err != nil {
		return nil, err
	}

	var sctx Context
	if err := json.Unmarshal(data, &sctx); err != nil {
		// A corrupt entry is not worth failing the request over.
		return NewContext(), nil
	}
	if sctx.LastToolResults == nil {
		sctx.LastToolResults = map[string]map[string]any{}
	}
	return &sctx, nil
}

func (s *RedisStore) Update(ctx context.Context, sessionID string, patch Patch) error {
	sctx, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sctx.apply(patch)

	data, err := json.Marshal(sctx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+sessionID, data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, redisKeyPrefix+sessionID).Err()
}
