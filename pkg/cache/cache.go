// Package cache provides pluggable artifact caching for rendered graphs.
//
// Backends cover the deployment spectrum: [FileCache] for CLI runs,
// [MemoryCache] for tests and single-process servers, [RedisCache] for
// multi-instance deployments, and [NullCache] to disable caching
// entirely. [NewCompressed] wraps any backend with zstd compression for
// large artifacts such as SVG documents.
//
// Keys are derived through a [Keyer] so every consumer agrees on the key
// layout, and [NewScopedKeyer] prefixes keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}
