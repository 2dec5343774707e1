package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sunset/pkg/errors"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, Filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[project]
name = "acme-api"
version = "1.4.0"
framework = "acme"

[[deprecations]]
message = "legacy token auth"
warn_in = "1.2.0"
gone_in = "2.0.0"
replace_with = "OAuth device flow"
locator = "auth/legacy.go"

[[packages]]
name = ":fixtures"
version = "0.3.0"

[[packages.deprecations]]
message = "old fixture layout"
gone_in = "0.3.0"
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if f.Project.Name != "acme-api" {
		t.Errorf("project name = %q, want acme-api", f.Project.Name)
	}
	if f.Project.Version != "1.4.0" {
		t.Errorf("project version = %q, want 1.4.0", f.Project.Version)
	}
	if f.Framework() != "acme" {
		t.Errorf("Framework() = %q, want acme", f.Framework())
	}
	if f.Path() != path {
		t.Errorf("Path() = %q, want %q", f.Path(), path)
	}

	if len(f.Deprecations) != 1 {
		t.Fatalf("len(Deprecations) = %d, want 1", len(f.Deprecations))
	}
	rec := f.Deprecations[0]
	if rec.Message != "legacy token auth" {
		t.Errorf("message = %q, want legacy token auth", rec.Message)
	}
	if rec.WarnIn != "1.2.0" || rec.GoneIn != "2.0.0" {
		t.Errorf("boundaries = (%q, %q), want (1.2.0, 2.0.0)", rec.WarnIn, rec.GoneIn)
	}
	if rec.ReplaceWith != "OAuth device flow" {
		t.Errorf("replace_with = %q, want OAuth device flow", rec.ReplaceWith)
	}
	if rec.Locator != "auth/legacy.go" {
		t.Errorf("locator = %q, want auth/legacy.go", rec.Locator)
	}

	if len(f.Packages) != 1 {
		t.Fatalf("len(Packages) = %d, want 1", len(f.Packages))
	}
	pkg := f.Packages[0]
	if pkg.Name != ":fixtures" || pkg.Version != "0.3.0" {
		t.Errorf("package = (%q, %q), want (:fixtures, 0.3.0)", pkg.Name, pkg.Version)
	}
	if len(pkg.Deprecations) != 1 || pkg.Deprecations[0].Message != "old fixture layout" {
		t.Errorf("package deprecations = %+v, want one record", pkg.Deprecations)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), Filename))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want code %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `[project
name = broken`)

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want code %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing project name",
			content: `[project]` + "\n" + `version = "1.0.0"`,
		},
		{
			name: "package without name",
			content: `
[project]
name = "acme"

[[packages]]
version = "1.0.0"
`,
		},
		{
			name: "record without message",
			content: `
[project]
name = "acme"

[[deprecations]]
gone_in = "2.0.0"
`,
		},
		{
			name: "package record without message",
			content: `
[project]
name = "acme"

[[packages]]
name = "other"

[[packages.deprecations]]
gone_in = "2.0.0"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want code %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestFrameworkDefaultsToName(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[project]
name = "acme-api"
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if f.Framework() != "acme-api" {
		t.Errorf("Framework() = %q, want acme-api", f.Framework())
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, `
[project]
name = "acme"
`)

	nested := filepath.Join(root, "deep", "nested", "dir")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}

func TestFindSameDirectory(t *testing.T) {
	dir := t.TempDir()
	want := writeManifest(t, dir, `
[project]
name = "acme"
`)

	got, err := Find(dir)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}

func TestFindMissing(t *testing.T) {
	_, err := Find(t.TempDir())
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Find() error = %v, want code %s", err, errors.ErrCodeFileNotFound)
	}
}
