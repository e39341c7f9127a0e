package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. It allows swapping the
// implementation (Redis, in-memory, no-op).
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found=false means a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}

type noop struct{}

// Noop returns a cache that stores nothing. Used when Redis is not
// reachable so that repositories never have to nil-check their cache.
func Noop() Cache { return noop{} }

func (noop) Get(ctx context.Context, key string, dest interface{}) (bool, error) { return false, nil }
func (noop) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noop) Delete(ctx context.Context, keys ...string) error        { return nil }
func (noop) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (noop) Ping(ctx context.Context) error                          { return nil }
