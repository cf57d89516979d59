package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis"
)

// RedisKV stores bundle keys as plain Redis strings.
type RedisKV struct {
	client *redis.Client
}

var _ KV = (*RedisKV)(nil)

func NewRedisKV(addr, password string, db int) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &RedisKV{client: client}, nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.WithContext(ctx).Ping().Err()
}

func (r *RedisKV) Get(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	vals, err := r.client.WithContext(ctx).MGet(keys...).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("mget: %w", err)
	}
	for i, v := range vals {
		// MGET reports missing keys as nil entries.
		if s, ok := v.(string); ok {
			out[keys[i]] = s
		}
	}
	return out, nil
}

// Apply runs all writes in a MULTI/EXEC block.
func (r *RedisKV) Apply(ctx context.Context, set map[string]string, del []string) error {
	pipe := r.client.WithContext(ctx).TxPipeline()
	for k, v := range set {
		pipe.Set(k, v, 0)
	}
	if len(del) > 0 {
		pipe.Del(del...)
	}
	if _, err := pipe.Exec(); err != nil {
		return fmt.Errorf("exec pipeline: %w", err)
	}
	return nil
}
