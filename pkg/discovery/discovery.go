package discovery

import (
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/sunset/pkg/deprecation"
	"github.com/matzehuels/sunset/pkg/errors"
)

// DeprecatorFactory produces the deprecator published under a registration name.
// Factories run lazily, once per resolve, so package singletons should be
// captured by the closure rather than rebuilt on every call.
type DeprecatorFactory func() *deprecation.Deprecator

// RegistryFactory produces the registry published under a registration name.
type RegistryFactory func() *deprecation.Registry

var (
	deprecators = make(map[string]DeprecatorFactory)
	registries  = make(map[string]RegistryFactory)
	mu          sync.RWMutex
)

// RegisterDeprecator publishes a deprecator factory under name, typically from
// an init function of the package that owns the deprecations. The first
// registration for a name wins; a second attempt fails with INVALID_STATE and
// leaves the original factory in place.
func RegisterDeprecator(name string, factory DeprecatorFactory) error {
	if err := errors.ValidatePackageName(name); err != nil {
		return err
	}
	if factory == nil {
		return errors.New(errors.ErrCodeInvalidState, "deprecator factory for %q is nil", name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := deprecators[name]; ok {
		return errors.New(errors.ErrCodeInvalidState, "deprecator %q already registered", name)
	}
	deprecators[name] = factory
	return nil
}

// RegisterRegistry publishes a registry factory under name. The same
// first-registration-wins rule as [RegisterDeprecator] applies.
func RegisterRegistry(name string, factory RegistryFactory) error {
	if err := errors.ValidatePackageName(name); err != nil {
		return err
	}
	if factory == nil {
		return errors.New(errors.ErrCodeInvalidState, "registry factory for %q is nil", name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := registries[name]; ok {
		return errors.New(errors.ErrCodeInvalidState, "registry %q already registered", name)
	}
	registries[name] = factory
	return nil
}

// MustRegisterDeprecator is RegisterDeprecator that panics on error, for use
// from init functions.
func MustRegisterDeprecator(name string, factory DeprecatorFactory) {
	if err := RegisterDeprecator(name, factory); err != nil {
		panic(err)
	}
}

// MustRegisterRegistry is RegisterRegistry that panics on error.
func MustRegisterRegistry(name string, factory RegistryFactory) {
	if err := RegisterRegistry(name, factory); err != nil {
		panic(err)
	}
}

// DeprecatorNames returns the registered deprecator names in sorted order.
func DeprecatorNames() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Sorted(maps.Keys(deprecators))
}

// RegistryNames returns the registered registry names in sorted order.
func RegistryNames() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Sorted(maps.Keys(registries))
}

// ResolveDeprecator invokes the factory registered under name. Unknown names
// fail with NOT_FOUND, factories that yield nil with INTERNAL.
func ResolveDeprecator(name string) (*deprecation.Deprecator, error) {
	mu.RLock()
	factory, ok := deprecators[name]
	mu.RUnlock()

	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no deprecator registered under %q", name)
	}
	d := factory()
	if d == nil {
		return nil, errors.New(errors.ErrCodeInternal, "deprecator factory %q returned nil", name)
	}
	return d, nil
}

// ResolveRegistry invokes the factory registered under name.
func ResolveRegistry(name string) (*deprecation.Registry, error) {
	mu.RLock()
	factory, ok := registries[name]
	mu.RUnlock()

	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no registry registered under %q", name)
	}
	r := factory()
	if r == nil {
		return nil, errors.New(errors.ErrCodeInternal, "registry factory %q returned nil", name)
	}
	return r, nil
}

// Validate resolves every registration and checks that each factory yields a
// non-nil object whose declared identity matches its registration name:
// Deprecator.Name for deprecators, Registry.Framework for registries. All
// problems are collected rather than failing on the first, so tooling can
// report the complete list. A nil return means every registration is
// consistent.
func Validate() []error {
	mu.RLock()
	depNames := slices.Sorted(maps.Keys(deprecators))
	regNames := slices.Sorted(maps.Keys(registries))
	mu.RUnlock()

	var errs []error
	for _, name := range depNames {
		d, err := ResolveDeprecator(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if d.Name() != name {
			errs = append(errs, errors.New(errors.ErrCodeInvalidConfig,
				"deprecator registered as %q declares package %q", name, d.Name()))
		}
	}
	for _, name := range regNames {
		r, err := ResolveRegistry(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if r.Framework() != name {
			errs = append(errs, errors.New(errors.ErrCodeInvalidConfig,
				"registry registered as %q declares framework %q", name, r.Framework()))
		}
	}
	return errs
}

// Reset drops every registration. Intended for tests that need a clean slate;
// production code registers once per process and never resets.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	deprecators = make(map[string]DeprecatorFactory)
	registries = make(map[string]RegistryFactory)
}
