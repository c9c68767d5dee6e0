package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheStore wraps a Store with a Redis read-through, write-through cache.
// The ttl only bounds how long the cached copy lives; it has nothing to do with link expiry.
type RedisCacheStore struct {
	store  Store
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheStore creates a new Redis-cached store decorator.
func NewRedisCacheStore(store Store, client *redis.Client, ttl time.Duration) *RedisCacheStore {
	return &RedisCacheStore{
		store:  store,
		client: client,
		prefix: "cache:url:",
		ttl:    ttl,
	}
}

// Get checks the cache first and populates it on a miss.
func (r *RedisCacheStore) Get(ctx context.Context, key string) (string, error) {
	if value, err := r.client.Get(ctx, r.prefix+key).Result(); err == nil {
		return value, nil
	}

	value, err := r.store.Get(ctx, key)
	if err != nil {
		return "", err
	}

	r.cache(ctx, key, value)

	return value, nil
}

// Set writes to the underlying store and then refreshes the cache.
func (r *RedisCacheStore) Set(ctx context.Context, key, value string) error {
	if err := r.store.Set(ctx, key, value); err != nil {
		return err
	}

	r.cache(ctx, key, value)

	return nil
}

// cache failures are ignored; the underlying store stays authoritative.
func (r *RedisCacheStore) cache(ctx context.Context, key, value string) {
	_ = r.client.Set(ctx, r.prefix+key, value, r.ttl).Err()
}

// Compile-time check.
var _ Store = (*RedisCacheStore)(nil)
