// Package cache stores serialized generation results so repeated runs
// with identical, seeded parameters can skip the geometry work. Three
// backends exist: a file cache for CLI usage, a Redis cache for server
// deployments and a null cache that disables caching entirely.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is the interface all backends implement.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLRun is how long cached generation results stay valid. Generation is
// deterministic for a seeded parameter set, so the TTL only bounds disk
// usage, not staleness.
const TTLRun = 7 * 24 * time.Hour

// Environment variables selecting the backend.
const (
	redisAddrEnv = "SRGEN_REDIS_ADDR"
	disableEnv   = "SRGEN_CACHE"
)

// DefaultDir returns the file cache directory under the user cache dir.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "srgen"), nil
}

// FromEnv selects a backend: Redis when SRGEN_REDIS_ADDR is set, the
// null cache when SRGEN_CACHE=off, the file cache otherwise.
func FromEnv(ctx context.Context) (Cache, error) {
	if os.Getenv(disableEnv) == "off" {
		return NewNullCache(), nil
	}
	if addr := os.Getenv(redisAddrEnv); addr != "" {
		return NewRedisCache(ctx, addr)
	}
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewFileCache(dir)
}
