package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/simplemovies/observability"
	"github.com/kbukum/simplemovies/redis"
)

// Redis is a Store backed by a Redis server. Every key is stored as
// "<prefix>:<key>". Redis persists writes on its own, so Sync only checks
// that the server is reachable.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis store over client. A zero ttl keeps keys forever.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) fullKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok, err := r.client.Get(ctx, r.fullKey(key))
	if err != nil {
		return nil, false, fmt.Errorf("kvstore: redis get %q: %w", key, err)
	}
	return v, ok, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.fullKey(key), value, r.ttl); err != nil {
		return fmt.Errorf("kvstore: redis set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.fullKey(key)); err != nil {
		return fmt.Errorf("kvstore: redis delete %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Sync(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// CheckHealth reports the server's health.
func (r *Redis) CheckHealth(ctx context.Context) observability.Health {
	return r.client.CheckHealth(ctx)
}
