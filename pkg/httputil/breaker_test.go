package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBreakerClientSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewBreakerClient(server.Client())

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	states := client.States()
	if states[req.URL.Host] != "closed" {
		t.Errorf("circuit state = %q, want closed", states[req.URL.Host])
	}
}

func TestBreakerClientServerErrorReturnsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewBreakerClient(server.Client())

	// 5xx counts as a breaker failure but the caller still gets the response.
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadGateway)
	}
}

func TestBreakerClientClientErrorIsNotFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewBreakerClient(server.Client())

	// 4xx responses never trip the circuit.
	for range 10 {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Do() error: %v", err)
		}
		resp.Body.Close()
	}

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	if states := client.States(); states[req.URL.Host] != "closed" {
		t.Errorf("circuit state = %q, want closed", states[req.URL.Host])
	}
}

func TestBreakerClientTripsAfterFailures(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewBreakerClient(server.Client())

	// The first 5 failures reach the server.
	for i := range 5 {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Do() #%d error: %v", i+1, err)
		}
		resp.Body.Close()
	}
	if requests != 5 {
		t.Fatalf("server requests = %d, want 5", requests)
	}

	// The circuit is now open: requests fail fast without hitting the server.
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	_, err := client.Do(req)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Do() error = %v, want ErrCircuitOpen", err)
	}
	if requests != 5 {
		t.Errorf("server requests = %d, want 5 after circuit opened", requests)
	}

	if states := client.States(); states[req.URL.Host] != "open" {
		t.Errorf("circuit state = %q, want open", states[req.URL.Host])
	}
}

func TestBreakerClientTransportErrorCounts(t *testing.T) {
	// Closing the server makes every dial fail.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	client := NewBreakerClient(server.Client())
	server.Close()

	for range 5 {
		req, _ := http.NewRequest(http.MethodGet, url, nil)
		if _, err := client.Do(req); err == nil {
			t.Fatal("Do() should fail against closed server")
		}
	}

	req, _ := http.NewRequest(http.MethodGet, url, nil)
	_, err := client.Do(req)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Do() error = %v, want ErrCircuitOpen", err)
	}
}

func TestBreakerClientPerHostIsolation(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	client := NewBreakerClient(failing.Client())

	// Trip the circuit for the failing host.
	for range 5 {
		req, _ := http.NewRequest(http.MethodGet, failing.URL, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Do() error: %v", err)
		}
		resp.Body.Close()
	}

	failReq, _ := http.NewRequest(http.MethodGet, failing.URL, nil)
	if _, err := client.Do(failReq); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("failing host error = %v, want ErrCircuitOpen", err)
	}

	// The healthy host is unaffected.
	okReq, _ := http.NewRequest(http.MethodGet, healthy.URL, nil)
	resp, err := client.Do(okReq)
	if err != nil {
		t.Fatalf("healthy host Do() error: %v", err)
	}
	resp.Body.Close()

	states := client.States()
	if states[failReq.URL.Host] != "open" {
		t.Errorf("failing host state = %q, want open", states[failReq.URL.Host])
	}
	if states[okReq.URL.Host] != "closed" {
		t.Errorf("healthy host state = %q, want closed", states[okReq.URL.Host])
	}
}

func TestNewBreakerClientNilDefaults(t *testing.T) {
	client := NewBreakerClient(nil)
	if client == nil {
		t.Fatal("NewBreakerClient(nil) returned nil")
	}
	if client.client == nil {
		t.Error("nil client should default to a real HTTP client")
	}
	if len(client.States()) != 0 {
		t.Error("new client should have no circuits")
	}
}
