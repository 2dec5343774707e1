package metadata

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// GoMod resolves module versions from a project's go.mod require entries.
// Resolution is purely local; no network access is involved.
type GoMod struct {
	path string
}

// NewGoMod returns a provider reading require entries from the go.mod at
// path. A directory path resolves to the go.mod file inside it.
func NewGoMod(path string) *GoMod {
	return &GoMod{path: path}
}

func (g *GoMod) InstalledVersion(_ context.Context, name string) (string, error) {
	path := g.path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "go.mod")
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	version, ok := scanGoMod(f, name)
	if !ok {
		return "", fmt.Errorf("module %s not in %s: %w", name, path, ErrNotFound)
	}
	return version, nil
}

// scanGoMod walks require entries (block and single-line forms) looking for
// the given module path. Indirect requirements count; their pin is just as
// binding for a version lookup.
func scanGoMod(r io.Reader, module string) (string, bool) {
	inRequire := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle require block
		if strings.HasPrefix(line, "require (") || line == "require(" {
			inRequire = true
			continue
		}
		if inRequire && line == ")" {
			inRequire = false
			continue
		}

		// Single-line require
		if strings.HasPrefix(line, "require ") && !strings.Contains(line, "(") {
			line = strings.TrimPrefix(line, "require ")
		} else if !inRequire {
			continue
		}

		if path, version := parseRequireLine(line); path == module && version != "" {
			return version, true
		}
	}
	return "", false
}

// parseRequireLine splits one require entry into module path and version.
// Inline comments (including "// indirect" markers) are stripped first.
func parseRequireLine(line string) (path, version string) {
	if idx := strings.Index(line, "//"); idx != -1 {
		line = line[:idx]
	}

	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) < 2 {
		return "", ""
	}
	// Strip quotes from old-style go.mod files
	return strings.Trim(fields[0], `"`), fields[1]
}
