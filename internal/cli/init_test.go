package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sunset/pkg/errors"
	"github.com/matzehuels/sunset/pkg/manifest"
)

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sunset.toml")
	c := newTestCLI(t, path)

	err := c.runInit(initOpts{name: "acme-api", version: "1.4.0"})
	if err != nil {
		t.Fatalf("runInit() error: %v", err)
	}

	f, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("scaffolded manifest does not load: %v", err)
	}
	if f.Project.Name != "acme-api" {
		t.Errorf("Project.Name = %q, want acme-api", f.Project.Name)
	}
	if f.Project.Version != "1.4.0" {
		t.Errorf("Project.Version = %q, want 1.4.0", f.Project.Version)
	}
}

func TestRunInitDefaultsToModuleName(t *testing.T) {
	dir := t.TempDir()
	gomod := "module github.com/acme/payments\n\ngo 1.24.0\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	c := newTestCLI(t, "")
	if err := c.runInit(initOpts{}); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}

	f, err := manifest.Load(filepath.Join(dir, "sunset.toml"))
	if err != nil {
		t.Fatalf("scaffolded manifest does not load: %v", err)
	}
	if f.Project.Name != "payments" {
		t.Errorf("Project.Name = %q, want payments", f.Project.Name)
	}
}

func TestRunInitRefusesOverwrite(t *testing.T) {
	path := writeManifest(t, projectManifest)
	c := newTestCLI(t, path)

	err := c.runInit(initOpts{name: "other"})
	if !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Fatalf("runInit() error = %v, want INVALID_STATE", err)
	}

	if err := c.runInit(initOpts{name: "other", force: true}); err != nil {
		t.Fatalf("runInit() with force error: %v", err)
	}
	f, err := manifest.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Project.Name != "other" {
		t.Errorf("Project.Name = %q, want other after overwrite", f.Project.Name)
	}
}
