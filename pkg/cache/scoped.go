package cache

import (
	"context"
	"time"
)

// Scoped namespaces every key with a prefix so independent consumers can
// share one backend without colliding:
//
//	store, _ := cache.NewFileCache(dir)
//	goCache := cache.NewScoped(store, "goproxy:")
//	pyCache := cache.NewScoped(store, "pypi:")
//
// Close is a no-op on the wrapper; the owner of the underlying backend
// closes it.
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped wraps inner, prepending prefix to every key. A nil inner
// falls back to NullCache.
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NullCache{}
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves the value stored under the prefixed key.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores the value under the prefixed key.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes the value stored under the prefixed key.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close does nothing; the wrapped backend stays open for other scopes.
func (s *Scoped) Close() error { return nil }

var _ Cache = (*Scoped)(nil)
