package pypi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/sunset/pkg/cache"
	"github.com/matzehuels/sunset/pkg/metadata"
)

var _ metadata.Provider = (*Client)(nil)

func TestClient_Latest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/requests/json" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(apiResponse{
			Info: apiInfo{Name: "requests", Version: "2.31.0"},
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	version, err := c.Latest(context.Background(), "requests", true)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if version != "2.31.0" {
		t.Errorf("expected version 2.31.0, got %s", version)
	}
}

func TestClient_Latest_NormalizesName(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(apiResponse{
			Info: apiInfo{Name: "zope-interface", Version: "6.1"},
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	if _, err := c.Latest(context.Background(), "Zope.Interface", true); err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if gotPath != "/zope-interface/json" {
		t.Errorf("request path = %q, want %q", gotPath, "/zope-interface/json")
	}
}

func TestClient_Latest_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.Latest(context.Background(), "missing-package", true)
	if !errors.Is(err, metadata.ErrNotFound) {
		t.Errorf("Latest error = %v, want metadata.ErrNotFound", err)
	}
}

func TestClient_InstalledVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(apiResponse{
			Info: apiInfo{Name: "flask", Version: "3.0.2"},
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	version, err := c.InstalledVersion(context.Background(), "flask")
	if err != nil {
		t.Fatalf("InstalledVersion failed: %v", err)
	}
	if version != "3.0.2" {
		t.Errorf("expected version 3.0.2, got %s", version)
	}
}

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return &Client{
		Client:  metadata.NewClient(cache.NewNullCache(), "pypi:", time.Hour, nil),
		baseURL: serverURL,
	}
}
