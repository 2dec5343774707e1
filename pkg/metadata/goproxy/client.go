// Package goproxy resolves Go module versions through the Go module proxy
// protocol (https://go.dev/ref/mod#goproxy-protocol).
package goproxy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/sunset/pkg/cache"
	"github.com/matzehuels/sunset/pkg/metadata"
)

// defaultHeaders asks the proxy to answer from its own cache without
// triggering a fetch from origin. Lookups stay fast and never cause the
// proxy to hit the upstream VCS.
var defaultHeaders = map[string]string{
	"Disable-Module-Fetch": "true",
}

// Client resolves Go module versions from a module proxy.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*metadata.Client
	baseURL string
}

// NewClient creates a module proxy client with the given cache backend.
//
// Parameters:
//   - backend: Cache backend for response caching (nil for no caching)
//   - cacheTTL: How long responses are cached (typical: 1-24 hours)
//
// The returned Client queries proxy.golang.org and is safe for concurrent
// use.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  metadata.NewClient(backend, "goproxy:", cacheTTL, defaultHeaders),
		baseURL: "https://proxy.golang.org",
	}
}

// Latest returns the latest published version of a Go module.
//
// The mod parameter should be a full module path (e.g., "github.com/user/repo").
// Module paths with uppercase letters are escaped per the module proxy
// protocol. If refresh is true, the cache is bypassed and a fresh API call
// is made.
//
// Returns [metadata.ErrNotFound] if the module doesn't exist.
func (c *Client) Latest(ctx context.Context, mod string, refresh bool) (string, error) {
	mod = strings.TrimSpace(mod)

	var version string
	err := c.Cached(ctx, mod, refresh, &version, func() error {
		v, err := c.fetchLatest(ctx, mod)
		if err != nil {
			return err
		}
		version = v
		return nil
	})
	if err != nil {
		return "", err
	}
	return version, nil
}

// InstalledVersion resolves name to its latest published version, serving
// cached data when available. It adapts the client to the
// [metadata.Provider] interface for packages that cannot be resolved
// locally.
func (c *Client) InstalledVersion(ctx context.Context, name string) (string, error) {
	return c.Latest(ctx, name, false)
}

func (c *Client) fetchLatest(ctx context.Context, mod string) (string, error) {
	url := fmt.Sprintf("%s/%s/@latest", c.baseURL, escapePath(mod))

	var data latestResponse
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			return "", fmt.Errorf("%w: go module %s", err, mod)
		}
		return "", err
	}
	return data.Version, nil
}

// escapePath encodes uppercase letters as "!" followed by the lowercase
// letter, per the module proxy protocol's case encoding.
func escapePath(path string) string {
	var b strings.Builder
	for _, r := range path {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('!')
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type latestResponse struct {
	Version string `json:"Version"`
	Time    string `json:"Time"`
}
