package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/sunset/pkg/cache"
	"github.com/matzehuels/sunset/pkg/errors"
	"github.com/matzehuels/sunset/pkg/httputil"
)

const (
	httpTimeout = 30 * time.Second
	userAgent   = "sunset/1.0"
)

// DefaultCacheTTL is how long registry responses stay cached when the caller
// has no stronger preference. Version metadata changes slowly; a day keeps
// repeat runs off the network without hiding new releases for long.
const DefaultCacheTTL = 24 * time.Hour

// ErrNotFound reports a package unknown to the queried source. It carries
// the NOT_FOUND code; compare with errors.Is.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "package not found")

// Client provides shared HTTP functionality for registry metadata clients:
// response caching, retry with backoff, per-host circuit breaking, and
// status mapping.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *httputil.BreakerClient
	cache   cache.Cache
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a base metadata client.
//
// Parameters:
//   - backend: Cache backend for response caching (nil disables caching)
//   - prefix: Namespace for this client's cache keys (e.g. "goproxy:")
//   - cacheTTL: How long responses stay cached (typical: 1-24 hours)
//   - headers: Default headers added to every request (may be nil)
//
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, prefix string, cacheTTL time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    httputil.NewBreakerClient(httputil.NewHTTPClient(httpTimeout)),
		cache:   cache.NewScoped(backend, prefix),
		ttl:     cacheTTL,
		headers: headers,
	}
}

// Cached returns the cached value for key, or executes fetch and stores its
// result.
//
// Parameters:
//   - ctx: Controls cancellation of cache access and the fetch call
//   - key: Cache key within this client's namespace
//   - refresh: When true the cached copy is ignored and refetched
//   - v: Destination the cached or fetched value is decoded into
//   - fetch: Fills v on a cache miss; retried with backoff while it returns
//     retryable errors
//
// Corrupt cache entries count as misses. Cache write failures are ignored;
// the fetched value is still returned.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); ok && err == nil {
			if json.Unmarshal(data, v) == nil {
				return nil
			}
		}
	}

	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}

	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// Get performs a GET request and decodes the JSON response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs a GET request with additional headers and decodes
// the JSON response into v. Per-call headers override the client defaults.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	resp, err := c.do(ctx, url, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "request %s failed", url)}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// checkStatus maps HTTP status codes to the client error taxonomy: 404 is
// ErrNotFound, 429 and 5xx are retryable, everything else non-2xx fails flat.
func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeRateLimited, "rate limited (status %d)", code)}
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "server error (status %d)", code)}
	default:
		return errors.New(errors.ErrCodeInternal, "unexpected status %d", code)
	}
}

var normalizeRE = regexp.MustCompile(`[-_.]+`)

// NormalizePkgName normalizes a package name per PEP 503: lowercase with
// runs of ".", "-", and "_" collapsed to a single "-".
func NormalizePkgName(name string) string {
	return normalizeRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
