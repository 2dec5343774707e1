package metadata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGoMod(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "go.mod")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGoModInstalledVersion(t *testing.T) {
	path := writeGoMod(t, `module github.com/example/myapp

go 1.21

require (
	github.com/gin-gonic/gin v1.9.0
	github.com/spf13/cobra v1.7.0
	golang.org/x/sync v0.3.0 // indirect
)

require github.com/stretchr/testify v1.8.0
`)

	tests := []struct {
		name   string
		module string
		want   string
	}{
		{"block entry", "github.com/gin-gonic/gin", "v1.9.0"},
		{"indirect entry", "golang.org/x/sync", "v0.3.0"},
		{"single-line entry", "github.com/stretchr/testify", "v1.8.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewGoMod(path).InstalledVersion(context.Background(), tt.module)
			if err != nil {
				t.Fatalf("InstalledVersion() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("InstalledVersion(%q) = %q, want %q", tt.module, got, tt.want)
			}
		})
	}
}

func TestGoModInstalledVersionMissing(t *testing.T) {
	path := writeGoMod(t, `module github.com/example/myapp

require github.com/gin-gonic/gin v1.9.0
`)

	_, err := NewGoMod(path).InstalledVersion(context.Background(), "github.com/absent/module")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("InstalledVersion() error = %v, want ErrNotFound", err)
	}
}

func TestGoModDirectoryPath(t *testing.T) {
	path := writeGoMod(t, `module github.com/example/myapp

require github.com/gin-gonic/gin v1.9.0
`)

	// Passing the directory resolves to the go.mod inside it
	got, err := NewGoMod(filepath.Dir(path)).InstalledVersion(context.Background(), "github.com/gin-gonic/gin")
	if err != nil {
		t.Fatalf("InstalledVersion() error: %v", err)
	}
	if got != "v1.9.0" {
		t.Errorf("InstalledVersion() = %q, want v1.9.0", got)
	}
}

func TestGoModFileMissing(t *testing.T) {
	_, err := NewGoMod(filepath.Join(t.TempDir(), "go.mod")).InstalledVersion(context.Background(), "github.com/gin-gonic/gin")
	if err == nil {
		t.Error("InstalledVersion() should fail when go.mod is absent")
	}
}

func TestScanGoMod(t *testing.T) {
	content := `module github.com/example/app

go 1.21

// a comment before the block
require (
	github.com/first/dep v1.0.0
	"github.com/quoted/dep" v2.1.0
)
`
	version, ok := scanGoMod(strings.NewReader(content), "github.com/quoted/dep")
	if !ok {
		t.Fatal("scanGoMod() did not find quoted module path")
	}
	if version != "v2.1.0" {
		t.Errorf("version = %q, want v2.1.0", version)
	}

	if _, ok := scanGoMod(strings.NewReader(content), "github.com/example/app"); ok {
		t.Error("scanGoMod() matched the module directive, want require entries only")
	}
}

func TestParseRequireLine(t *testing.T) {
	tests := []struct {
		line        string
		wantPath    string
		wantVersion string
	}{
		{"github.com/pkg/errors v0.9.1", "github.com/pkg/errors", "v0.9.1"},
		{"golang.org/x/sync v0.3.0 // indirect", "golang.org/x/sync", "v0.3.0"},
		{"  github.com/spf13/cobra v1.7.0  ", "github.com/spf13/cobra", "v1.7.0"},
		{`"github.com/quoted/pkg" v1.0.0`, "github.com/quoted/pkg", "v1.0.0"},
		{"github.com/example/pkg v1.0.0 // some other comment", "github.com/example/pkg", "v1.0.0"},
		{"// just a comment", "", ""},
		{"lonelyfield", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		name := tt.line
		if strings.TrimSpace(name) == "" {
			name = "empty"
		}
		t.Run(name, func(t *testing.T) {
			path, version := parseRequireLine(tt.line)
			if path != tt.wantPath || version != tt.wantVersion {
				t.Errorf("parseRequireLine(%q) = (%q, %q), want (%q, %q)",
					tt.line, path, version, tt.wantPath, tt.wantVersion)
			}
		})
	}
}
