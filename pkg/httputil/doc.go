// Package httputil provides HTTP utilities for package registry clients.
//
// # Overview
//
// This package provides transport infrastructure used by all registry API
// clients:
//
//   - [Retry]: Automatic retry with exponential backoff
//   - [NewTransport]: DNS-cached transport with pooled connections
//   - [BreakerClient]: Per-host circuit breaking
//
// Response caching is not handled here; registry clients persist responses
// through the cache package instead.
//
// # Retry
//
// [Retry] wraps operations with automatic retry for transient failures.
// Wrap errors worth retrying in [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff with jitter to avoid thundering herd:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchFromAPI()
//	})
//
// # Transport
//
// [NewTransport] resolves hostnames through a process-wide DNS cache that
// refreshes every 5 minutes. Registry clients issue many requests against a
// handful of hosts, so cached lookups avoid re-resolving the same names on
// every connection.
//
// # Circuit Breaking
//
// [BreakerClient] tracks failures per host. After 5 recent failures the
// circuit opens and requests fail fast with [ErrCircuitOpen] until the reset
// interval elapses (30 seconds initially, doubling up to 5 minutes):
//
//	client := httputil.NewBreakerClient(nil)
//	resp, err := client.Do(req)
//	if errors.Is(err, httputil.ErrCircuitOpen) {
//	    // Host is suspended, back off
//	}
package httputil
