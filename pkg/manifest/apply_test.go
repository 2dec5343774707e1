package manifest

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/sunset/pkg/deprecation"
	"github.com/matzehuels/sunset/pkg/errors"
)

// staticLookup resolves every package to a fixed version.
type staticLookup struct {
	version string
}

func (l staticLookup) InstalledVersion(context.Context, string) (string, error) {
	return l.version, nil
}

func loadManifest(t *testing.T, content string) *File {
	t.Helper()
	f, err := Load(writeManifest(t, t.TempDir(), content))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return f
}

func TestApply(t *testing.T) {
	f := loadManifest(t, `
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

[[deprecations]]
message = "v1 payload shape"
gone_in = "1.4.0"

[[packages]]
name = ":fixtures"
version = "0.3.0"

[[packages.deprecations]]
message = "old fixture layout"
gone_in = "0.3.0"
`)

	reg := deprecation.NewRegistry(f.Framework())
	if err := f.Apply(context.Background(), reg); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	project, ok := reg.Get("acme-api")
	if !ok {
		t.Fatal("project deprecator not in registry")
	}
	if project.Version().String() != "1.4.0" {
		t.Errorf("project version = %s, want 1.4.0", project.Version())
	}

	records := project.Records()
	if len(records) != 2 {
		t.Fatalf("project records = %d, want 2", len(records))
	}

	first := records[0]
	if first.State() != deprecation.Active {
		t.Errorf("first record state = %s, want active", first.State())
	}
	if !strings.Contains(first.Message(), "a replacement might be: OAuth device flow") {
		t.Errorf("message missing replacement suffix: %q", first.Message())
	}
	if loc, ok := first.Locator(); !ok || loc != "auth/legacy.go" {
		t.Errorf("locator = (%q, %v), want explicit auth/legacy.go", loc, ok)
	}

	if second := records[1]; second.State() != deprecation.Expired {
		t.Errorf("second record state = %s, want expired", second.State())
	}

	fixtures, ok := reg.Get(":fixtures")
	if !ok {
		t.Fatal("synthetic package not in registry")
	}
	if fixtures.Len() != 1 {
		t.Errorf("synthetic package records = %d, want 1", fixtures.Len())
	}
	if rec := fixtures.Records()[0]; rec.State() != deprecation.Expired {
		t.Errorf("fixture record state = %s, want expired", rec.State())
	}
}

func TestApplyResolvesVersionThroughLookup(t *testing.T) {
	f := loadManifest(t, `
[project]
name = "acme-api"

[[deprecations]]
message = "legacy token auth"
gone_in = "2.0.0"
`)

	reg := deprecation.NewRegistry(f.Framework(),
		deprecation.WithLookup(staticLookup{version: "1.0.0"}))
	if err := f.Apply(context.Background(), reg); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	d, ok := reg.Get("acme-api")
	if !ok {
		t.Fatal("project deprecator not in registry")
	}
	if d.Version().String() != "1.0.0" {
		t.Errorf("version = %s, want lookup's 1.0.0", d.Version())
	}
}

func TestApplySyntheticWithoutVersion(t *testing.T) {
	f := loadManifest(t, `
[project]
name = "acme-api"
version = "1.0.0"

[[packages]]
name = ":fixtures"
`)

	reg := deprecation.NewRegistry(f.Framework())
	err := f.Apply(context.Background(), reg)
	if !errors.Is(err, errors.ErrCodeMissingVersion) {
		t.Errorf("Apply() error = %v, want code %s", err, errors.ErrCodeMissingVersion)
	}
}

func TestApplyInvalidBoundary(t *testing.T) {
	f := loadManifest(t, `
[project]
name = "acme-api"
version = "1.0.0"

[[deprecations]]
message = "inverted boundaries"
warn_in = "2.0.0"
gone_in = "1.0.0"
`)

	reg := deprecation.NewRegistry(f.Framework())
	err := f.Apply(context.Background(), reg)
	if !errors.Is(err, errors.ErrCodeInvalidBoundary) {
		t.Errorf("Apply() error = %v, want code %s", err, errors.ErrCodeInvalidBoundary)
	}
}

func TestApplyInvalidVersion(t *testing.T) {
	f := loadManifest(t, `
[project]
name = "acme-api"
version = "not-a-version"
`)

	reg := deprecation.NewRegistry(f.Framework())
	err := f.Apply(context.Background(), reg)
	if !errors.Is(err, errors.ErrCodeInvalidVersion) {
		t.Errorf("Apply() error = %v, want code %s", err, errors.ErrCodeInvalidVersion)
	}
}

func TestApplyTwiceDuplicatesRecords(t *testing.T) {
	f := loadManifest(t, `
[project]
name = "acme-api"
version = "1.0.0"

[[deprecations]]
message = "legacy token auth"
gone_in = "2.0.0"
`)

	reg := deprecation.NewRegistry(f.Framework())
	for range 2 {
		if err := f.Apply(context.Background(), reg); err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
	}

	d, _ := reg.Get("acme-api")
	if d.Len() != 2 {
		t.Errorf("records after two applies = %d, want 2 (no deduplication)", d.Len())
	}
}
