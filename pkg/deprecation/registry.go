package deprecation

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/matzehuels/sunset/pkg/errors"
	"github.com/matzehuels/sunset/pkg/hooks"
)

// VersionLookup resolves the installed version of a package by name.
//
// The interface is satisfied by the providers in pkg/metadata; the registry
// depends only on this narrow slice of them.
type VersionLookup interface {
	// InstalledVersion returns the version string of the named package as
	// installed in the current environment.
	InstalledVersion(ctx context.Context, name string) (string, error)
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Registry)

// WithLookup sets the version lookup used for packages resolved without an
// explicit version. Defaults to reading the running binary's build info.
func WithLookup(l VersionLookup) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.lookup = l
		}
	}
}

// WithDeprecatorOptions sets options applied to every deprecator the
// registry creates, such as a shared locator resolver.
func WithDeprecatorOptions(opts ...Option) RegistryOption {
	return func(r *Registry) { r.depOpts = opts }
}

// Registry caches one Deprecator per package name under a shared framework
// identity.
//
// Resolution is first-write-wins: the deprecator created for a name keeps
// the version it was first resolved with, and later requests receive the
// cached instance even when they ask for a different version. Such version
// drift is reported through pkg/hooks as a non-fatal signal rather than an
// error, because callers scattered across a codebase cannot coordinate on a
// single version string.
//
// A Registry is safe for concurrent use.
type Registry struct {
	framework string
	lookup    VersionLookup
	depOpts   []Option

	mu          sync.Mutex
	deprecators map[string]*Deprecator
	order       []string
}

// NewRegistry creates an empty registry stamped with the given framework
// identity. The identity is carried into every record and emission so that
// multiple frameworks can report deprecations side by side.
func NewRegistry(framework string, opts ...RegistryOption) *Registry {
	r := &Registry{
		framework:   framework,
		lookup:      buildInfoLookup{},
		deprecators: make(map[string]*Deprecator),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Framework returns the registry's identity.
func (r *Registry) Framework() string { return r.framework }

// ForPackage returns the deprecator for the named package, creating it on
// first use.
//
// For a real package the installed version is resolved through the
// registry's lookup; a failed lookup yields a PACKAGE_NOT_FOUND error.
// Synthetic names (":"-prefixed) have no installed version and yield a
// MISSING_VERSION error here; resolve them with ForPackageVersion instead.
func (r *Registry) ForPackage(ctx context.Context, name string) (*Deprecator, error) {
	return r.resolve(ctx, name, Version{})
}

// ForPackageVersion returns the deprecator for the named package, pinning
// the given version on first use.
//
// When the package is already cached with a different version, the cached
// deprecator is returned unchanged and the drift is reported through
// pkg/hooks.
func (r *Registry) ForPackageVersion(ctx context.Context, name, version string) (*Deprecator, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return nil, err
	}
	return r.resolve(ctx, name, v)
}

func (r *Registry) resolve(ctx context.Context, name string, explicit Version) (*Deprecator, error) {
	if err := errors.ValidatePackageName(name); err != nil {
		return nil, err
	}

	if d, ok := r.lookupCached(name, explicit); ok {
		return d, nil
	}

	version := explicit
	if version.IsZero() {
		if errors.IsSynthetic(name) {
			return nil, errors.New(errors.ErrCodeMissingVersion,
				"synthetic package %s requires an explicit version", name)
		}
		var err error
		if version, err = r.installedVersion(ctx, name); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	if d, ok := r.deprecators[name]; ok {
		r.mu.Unlock()
		r.reportCached(name, d.version, explicit)
		return d, nil
	}

	opts := append([]Option{withFramework(r.framework)}, r.depOpts...)
	d, err := New(name, version, opts...)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.deprecators[name] = d
	r.order = append(r.order, name)
	r.mu.Unlock()

	hooks.Registry().OnResolve(r.framework, name, version.String(), false)
	return d, nil
}

// lookupCached returns the cached deprecator for name if one exists. Hooks
// fire after the lock is released so implementations may call back into the
// registry.
func (r *Registry) lookupCached(name string, explicit Version) (*Deprecator, bool) {
	r.mu.Lock()
	d, ok := r.deprecators[name]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	r.reportCached(name, d.version, explicit)
	return d, true
}

func (r *Registry) reportCached(name string, held, explicit Version) {
	if !explicit.IsZero() && !held.Equal(explicit) {
		hooks.Registry().OnVersionDrift(r.framework, name, held.String(), explicit.String())
	}
	hooks.Registry().OnResolve(r.framework, name, held.String(), true)
}

// installedVersion resolves and parses the installed version of a real
// package, publishing the lookup outcome to pkg/hooks.
func (r *Registry) installedVersion(ctx context.Context, name string) (Version, error) {
	raw, err := r.lookup.InstalledVersion(ctx, name)
	hooks.Lookup().OnLookup(name, raw, err)
	if err != nil {
		return Version{}, errors.Wrap(errors.ErrCodePackageNotFound, err,
			"package %s not found", name)
	}
	return ParseVersion(raw)
}

// Get returns the cached deprecator for name without resolving anything.
func (r *Registry) Get(name string) (*Deprecator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deprecators[name]
	return d, ok
}

// Deprecators returns all cached deprecators in first-resolution order.
func (r *Registry) Deprecators() []*Deprecator {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Deprecator, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.deprecators[name])
	}
	return out
}

// buildInfoLookup resolves versions from the running binary's build info.
// It covers the common library case where the deprecated package is a module
// compiled into the current binary; anything richer lives in pkg/metadata.
type buildInfoLookup struct{}

func (buildInfoLookup) InstalledVersion(_ context.Context, name string) (string, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", errors.New(errors.ErrCodePackageNotFound, "build info unavailable")
	}
	if info.Main.Path == name && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version, nil
	}
	for _, dep := range info.Deps {
		if dep.Path != name {
			continue
		}
		if dep.Replace != nil {
			return dep.Replace.Version, nil
		}
		return dep.Version, nil
	}
	return "", errors.New(errors.ErrCodePackageNotFound, "module %s not in build info", name)
}
