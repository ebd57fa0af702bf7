package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisHash is the hash that holds every slot when no name is given.
const DefaultRedisHash = "gophsync:state"

// RedisRepository keeps all slots as fields of a single Redis hash, so Clear
// is one DEL and List is one HGETALL.
type RedisRepository struct {
	client *redis.Client
	hash   string
}

func NewRedisRepository(client *redis.Client, hash string) *RedisRepository {
	if hash == "" {
		hash = DefaultRedisHash
	}
	return &RedisRepository{client: client, hash: hash}
}

// OpenRedis parses a redis:// URL, pings the server and returns the client.
func OpenRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.HGet(ctx, r.hash, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state[%s]: %w", key, err)
	}
	return b, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.HSet(ctx, r.hash, key, value).Err(); err != nil {
		return fmt.Errorf("failed to set state[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.hash, key).Err(); err != nil {
		return fmt.Errorf("failed to delete state[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) List(ctx context.Context) (map[string][]byte, error) {
	fields, err := r.client.HGetAll(ctx, r.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list state: %w", err)
	}
	result := make(map[string][]byte, len(fields))
	for k, v := range fields {
		result[k] = []byte(v)
	}
	return result, nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.hash).Err(); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}
