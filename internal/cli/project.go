package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sunset/pkg/cache"
	"github.com/matzehuels/sunset/pkg/deprecation"
	"github.com/matzehuels/sunset/pkg/manifest"
	"github.com/matzehuels/sunset/pkg/metadata"
	"github.com/matzehuels/sunset/pkg/metadata/goproxy"
	"github.com/matzehuels/sunset/pkg/metadata/pypi"
)

// project bundles a loaded manifest with the registry its deprecations were
// applied to. Close releases the cache backend.
type project struct {
	file     *manifest.File
	registry *deprecation.Registry
	backend  cache.Cache
}

// Close releases the project's cache backend.
func (p *project) Close() {
	if p.backend != nil {
		_ = p.backend.Close()
	}
}

// openProject locates and loads the manifest, wires a registry with the
// metadata lookup chain, and applies every declared deprecation. Version
// resolution may hit the network for packages without pinned versions.
func (c *CLI) openProject(ctx context.Context) (*project, error) {
	path := c.manifest
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		if path, err = manifest.Find(wd); err != nil {
			return nil, err
		}
	}

	f, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}

	backend, err := c.newBackend(ctx)
	if err != nil {
		return nil, err
	}

	reg := deprecation.NewRegistry(f.Framework(),
		deprecation.WithLookup(c.newLookup(backend, filepath.Dir(f.Path()))))

	if err := f.Apply(ctx, reg); err != nil {
		_ = backend.Close()
		return nil, err
	}

	loggerFromContext(ctx).Debug("project loaded",
		"manifest", f.Path(),
		"framework", f.Framework(),
		"packages", len(reg.Deprecators()))
	return &project{file: f, registry: reg, backend: backend}, nil
}

// newLookup builds the version lookup chain for packages declared without an
// explicit version. Bare names resolve from the project's go.mod first, then
// the running binary's build info, then the Go module proxy; package-URL
// names route to their ecosystem's registry.
func (c *CLI) newLookup(backend cache.Cache, dir string) deprecation.VersionLookup {
	gp := goproxy.NewClient(backend, metadata.DefaultCacheTTL)
	py := pypi.NewClient(backend, metadata.DefaultCacheTTL)

	var goProvider metadata.Provider = gp
	var pyProvider metadata.Provider = py
	if c.refresh {
		goProvider = refreshing{gp}
		pyProvider = refreshing{py}
	}

	router := metadata.NewRouter(metadata.Chain{
		metadata.NewGoMod(dir),
		metadata.BuildInfo{},
		goProvider,
	})
	router.Register("golang", goProvider)
	router.Register("pypi", pyProvider)
	return router
}

// latestClient is the registry-client surface that supports cache bypass.
type latestClient interface {
	Latest(ctx context.Context, name string, refresh bool) (string, error)
}

// refreshing forces a fresh registry fetch on every lookup, for --refresh.
// Fresh responses still land in the cache for later runs.
type refreshing struct {
	c latestClient
}

func (r refreshing) InstalledVersion(ctx context.Context, name string) (string, error) {
	return r.c.Latest(ctx, name, true)
}

// moduleName returns the last element of the go.mod module path in dir, or
// "" when there is no parseable go.mod. Used to suggest a project name.
func moduleName(dir string) string {
	f, err := os.Open(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "module "); ok {
			mod := strings.Trim(strings.TrimSpace(rest), `"`)
			if i := strings.LastIndex(mod, "/"); i >= 0 {
				mod = mod[i+1:]
			}
			return mod
		}
	}
	return ""
}
