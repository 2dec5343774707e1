//go:build integration

package goproxy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/sunset/pkg/metadata"
)

func TestLatest_Integration(t *testing.T) {
	client := NewClient(nil, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tests := []struct {
		name    string
		mod     string
		wantErr bool
	}{
		{"cobra", "github.com/spf13/cobra", false},
		{"uppercase path", "github.com/BurntSushi/toml", false},
		{"nonexistent", "github.com/this-module/should-not-exist-12345", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, err := client.Latest(ctx, tt.mod, false)
			if (err != nil) != tt.wantErr {
				t.Errorf("Latest(%q) error = %v, wantErr %v", tt.mod, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, metadata.ErrNotFound) {
					t.Errorf("Latest(%q) error = %v, want metadata.ErrNotFound", tt.mod, err)
				}
				return
			}
			if version == "" {
				t.Error("version should not be empty")
			}
		})
	}
}
