// Package cache provides pluggable byte caches for metadata lookups.
//
// # Overview
//
// Resolving a package's installed or published version can mean a network
// round trip to a registry. Those answers change rarely, so the metadata
// clients read through a [Cache] with a TTL instead of hitting the network
// on every resolution.
//
// Three backends cover the deployment spectrum:
//
//   - [FileCache]: per-user on-disk cache for CLI runs
//   - [RedisCache]: shared cache for CI fleets and services
//   - [NullCache]: caching disabled (--no-cache)
//
// [Scoped] namespaces any backend by key prefix so independent consumers
// can share one store without colliding.
//
// # Keys
//
// Callers build keys with [Key], which hashes its parts into a stable,
// filesystem-safe string. Raw user input never becomes a path component.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with per-entry TTLs.
//
// Get distinguishes "not cached" (ok false, nil error) from infrastructure
// failures (non-nil error); callers treat both as a miss but may log the
// latter. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves the value for key. ok is false on a miss or after
	// expiry.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero or less stores the entry
	// without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
