package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "eventease:"

// RedisStore implements Store on Redis. Keys are prefixed so the blob space
// can share a Redis database with other tenants.
type RedisStore struct {
	rdb               *redis.Client
	createdInternally bool
}

// Options holds configuration for a Redis-backed store.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore wraps rdb if non-nil, otherwise dials a new client from opts.
// The connection is verified with PING.
func NewRedisStore(ctx context.Context, rdb *redis.Client, opts Options) (*RedisStore, error) {
	s := &RedisStore{rdb: rdb}
	if rdb == nil {
		s.rdb = redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		})
		s.createdInternally = true
	}
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return s, nil
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close only closes the client if this store dialled it.
func (s *RedisStore) Close() error {
	if s.createdInternally && s.rdb != nil {
		return s.rdb.Close()
	}
	return nil
}
