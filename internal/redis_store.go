package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 3 * time.Second

// RedisKV keeps preferences in Redis so several machines can share history
type RedisKV struct {
	client *redis.Client
	prefix string
}

// OpenRedisKV connects to redisURL (a redis:// URL or a bare host:port)
func OpenRedisKV(redisURL, prefix string) (*RedisKV, error) {
	if redisURL == "" {
		return nil, &StoreError{Backend: "redis", Op: "open", Err: fmt.Errorf("store.redis_url is not set")}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, &StoreError{Backend: "redis", Op: "open", Key: opt.Addr, Err: err}
	}

	return NewRedisKV(client, prefix), nil
}

// NewRedisKV wraps an existing client
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) key(k string) string {
	return r.prefix + k
}

func (r *RedisKV) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StoreError{Backend: "redis", Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

func (r *RedisKV) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return &StoreError{Backend: "redis", Op: "set", Key: key, Err: err}
	}
	return nil
}

func (r *RedisKV) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return &StoreError{Backend: "redis", Op: "delete", Key: key, Err: err}
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
