package booking

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound reports that a storage key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Storage is the durable key-value capability the coordinator persists into.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// RedisStore implements Storage on a Redis client. Booking records are small
// JSON documents, stored without expiry; the coordinator owns their lifetime.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Storage backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
