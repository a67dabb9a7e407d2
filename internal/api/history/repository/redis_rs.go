package historyRepository

import (
	"CafeAnalyzer/internal/api/history"
	"CafeAnalyzer/pkg/redis"
	"context"
	"errors"
)

type redisStore struct {
	client redis.IRedis
}

func NewRedisStore(client redis.IRedis) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key)
	if errors.Is(err, redis.ErrKeyNotFound) {
		return "", history.ErrHistoryNotFound
	}
	return val, err
}

func (s *redisStore) Set(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, key, value)
}
