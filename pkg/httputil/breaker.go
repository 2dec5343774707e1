package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// ErrCircuitOpen is returned by [BreakerClient.Do] while requests to a host
// are suspended after repeated failures.
var ErrCircuitOpen = errors.New("circuit open")

// errServerStatus marks 5xx responses as breaker failures. The response is
// still handed back to the caller.
var errServerStatus = errors.New("server error status")

// BreakerClient wraps an [*http.Client] with per-host circuit breakers.
// After 5 recent failures against a host the circuit opens and requests
// fail fast with [ErrCircuitOpen] instead of waiting on a dead upstream.
// The circuit re-closes on an exponential schedule from 30 seconds up to
// 5 minutes.
type BreakerClient struct {
	client   *http.Client
	mu       sync.RWMutex
	breakers map[string]*circuit.Breaker
}

// NewBreakerClient wraps client with per-host circuit breakers. A nil client
// defaults to one built on [NewTransport] with a 30 second timeout.
func NewBreakerClient(client *http.Client) *BreakerClient {
	if client == nil {
		client = NewHTTPClient(30 * time.Second)
	}
	return &BreakerClient{
		client:   client,
		breakers: make(map[string]*circuit.Breaker),
	}
}

// breaker returns or creates the circuit breaker for the given host.
func (b *BreakerClient) breaker(host string) *circuit.Breaker {
	b.mu.RLock()
	br, ok := b.breakers[host]
	b.mu.RUnlock()

	if ok {
		return br
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Double-check after acquiring write lock
	if br, ok := b.breakers[host]; ok {
		return br
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 30 * time.Second
	exp.MaxInterval = 5 * time.Minute
	exp.Multiplier = 2.0
	exp.Reset()

	br = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    exp,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	})

	b.breakers[host] = br
	return br
}

// Do issues the request through the circuit breaker for the request's host.
// Transport errors and 5xx responses count as breaker failures; 5xx
// responses are still returned so callers keep their own status handling.
func (b *BreakerClient) Do(req *http.Request) (*http.Response, error) {
	host := req.URL.Host
	br := b.breaker(host)

	if !br.Ready() {
		return nil, fmt.Errorf("host %s: %w", host, ErrCircuitOpen)
	}

	var resp *http.Response
	err := br.Call(func() error {
		var doErr error
		resp, doErr = b.client.Do(req)
		if doErr != nil {
			return doErr
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return errServerStatus
		}
		return nil
	}, 0)

	switch {
	case err == nil:
		return resp, nil
	case errors.Is(err, errServerStatus):
		return resp, nil
	case errors.Is(err, circuit.ErrBreakerOpen):
		return nil, fmt.Errorf("host %s: %w", host, ErrCircuitOpen)
	default:
		return nil, err
	}
}

// States reports each known host's circuit as "open" or "closed", for
// health endpoints and diagnostics.
func (b *BreakerClient) States() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	states := make(map[string]string, len(b.breakers))
	for host, br := range b.breakers {
		if br.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}
