package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sunset/pkg/errors"
)

func TestResolveGraphFormat(t *testing.T) {
	tests := []struct {
		name    string
		opts    graphOpts
		want    string
		wantErr bool
	}{
		{"default is dot", graphOpts{}, "dot", false},
		{"svg from extension", graphOpts{output: "graph.svg"}, "svg", false},
		{"png from extension", graphOpts{output: "graph.PNG"}, "png", false},
		{"flag wins over extension", graphOpts{output: "graph.svg", format: "png"}, "png", false},
		{"extensionless output is dot", graphOpts{output: "graph"}, "dot", false},
		{"unknown format", graphOpts{format: "jpeg"}, "", true},
		{"unknown extension", graphOpts{output: "graph.txt"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveGraphFormat(tt.opts)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("resolveGraphFormat() error = %v, want INVALID_FORMAT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveGraphFormat() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveGraphFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunGraphDOT(t *testing.T) {
	c := newTestCLI(t, writeManifest(t, projectManifest))
	out := filepath.Join(t.TempDir(), "schedule.dot")

	if err := c.runGraph(context.Background(), graphOpts{output: out}); err != nil {
		t.Fatalf("runGraph() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	if !strings.Contains(dot, "digraph") {
		t.Errorf("output is not DOT:\n%s", dot)
	}
	for _, want := range []string{"billing", "legacy invoice export"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q", want)
		}
	}
}
