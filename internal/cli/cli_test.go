package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// projectManifest pins every version so tests never resolve over the
// network. billing's record is active at 1.0.0, the :reports record is
// already expired.
const projectManifest = `[project]
name = "billing"
version = "1.0.0"

[[deprecations]]
message = "legacy invoice export"
warn_in = "0.5.0"
gone_in = "2.0.0"
replace_with = "the async export API"

[[packages]]
name = ":reports"
version = "1.0.0"

[[packages.deprecations]]
message = "csv output"
gone_in = "0.5.0"
locator = "reports/csv.go"
`

// writeManifest writes a manifest into a fresh temp directory and returns
// its path.
func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sunset.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

// newTestCLI builds a CLI pointed at the given manifest, with a quiet
// logger and caching disabled.
func newTestCLI(t *testing.T, manifestPath string) *CLI {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.noCache = true
	c.manifest = manifestPath
	return c
}
