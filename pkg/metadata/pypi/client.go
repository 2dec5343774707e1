// Package pypi resolves Python package versions from the PyPI JSON API.
package pypi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/sunset/pkg/cache"
	"github.com/matzehuels/sunset/pkg/metadata"
)

// Client resolves package versions from the PyPI registry.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*metadata.Client
	baseURL string
}

// NewClient creates a PyPI client with the given cache backend.
//
// Parameters:
//   - backend: Cache backend for response caching (nil for no caching)
//   - cacheTTL: How long responses are cached (typical: 1-24 hours)
//
// The returned Client queries pypi.org and is safe for concurrent use.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  metadata.NewClient(backend, "pypi:", cacheTTL, nil),
		baseURL: "https://pypi.org/pypi",
	}
}

// Latest returns the latest published version of a Python package.
//
// The pkg parameter is normalized automatically per PEP 503
// (case-insensitive, runs of ".", "-", "_" collapse to "-"). If refresh is
// true, the cache is bypassed and a fresh API call is made.
//
// Returns [metadata.ErrNotFound] if the package doesn't exist.
func (c *Client) Latest(ctx context.Context, pkg string, refresh bool) (string, error) {
	pkg = metadata.NormalizePkgName(pkg)

	var version string
	err := c.Cached(ctx, pkg, refresh, &version, func() error {
		v, err := c.fetchLatest(ctx, pkg)
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

func (c *Client) fetchLatest(ctx context.Context, pkg string) (string, error) {
	url := fmt.Sprintf("%s/%s/json", c.baseURL, pkg)

	var data apiResponse
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			return "", fmt.Errorf("%w: pypi package %s", err, pkg)
		}
		return "", err
	}
	return data.Info.Version, nil
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
