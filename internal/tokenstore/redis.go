package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "blogia:"

type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if key == "" {
		return nil, ErrKeyRequired
	}
	return &RedisStore{client: client, key: redisPrefix + key}, nil
}

func (s *RedisStore) Get(ctx context.Context) (string, bool, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get token: %w", err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, token string) error {
	if token == "" {
		if err := s.client.Del(ctx, s.key).Err(); err != nil {
			return fmt.Errorf("redis delete token: %w", err)
		}
		return nil
	}
	// No TTL: the backend decides when the token stops being accepted.
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}
