// Package hooks provides observer hooks for deprecation events.
//
// This package enables optional instrumentation without adding hard
// dependencies on logging or test frameworks. Consumers register hooks at
// startup to receive deprecation emissions, registry resolutions, and
// metadata lookups.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library free of logging dependencies
//   - Lets a test harness observe every emission in a session
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks.SetEmissionHooks(&logEmissions{})
//	    hooks.SetRegistryHooks(&logRegistry{})
//	    // ... run application
//	}
//
// Libraries call hooks to publish events:
//
//	hooks.Emission().OnEmission(e)
//	hooks.Registry().OnVersionDrift(framework, pkg, held, requested)
package hooks

import "sync"

// EmissionEvent describes a single reported deprecation occurrence.
//
// Fields are plain strings so that hook implementations need no dependency on
// the core types. State is one of "pending", "active", "expired".
type EmissionEvent struct {
	Framework string // owning registry identity, may be empty for standalone deprecators
	Package   string // package the deprecation belongs to
	Message   string // full message, including any replacement suffix
	State     string // lifecycle state at declaration time
	WarnIn    string // warn-from boundary
	GoneIn    string // gone-by boundary
	Current   string // package version the record was classified against
	Locator   string // definition locator, empty when unknown
	File      string // emission site file, empty when unknown
	Line      int    // emission site line, zero when unknown
}

// EmissionHooks receives every deprecation emission.
type EmissionHooks interface {
	OnEmission(e EmissionEvent)
}

// RegistryHooks receives registry resolution events.
type RegistryHooks interface {
	// OnResolve records a deprecator resolution. cached is true when the
	// deprecator already existed in the registry.
	OnResolve(framework, pkg, version string, cached bool)

	// OnVersionDrift records a non-fatal version drift: a cached deprecator
	// was requested with a version different from the one it holds.
	OnVersionDrift(framework, pkg, held, requested string)
}

// LookupHooks receives package metadata lookup events.
type LookupHooks interface {
	OnLookup(pkg, version string, err error)
}

// NoopEmissionHooks is a no-op implementation of EmissionHooks.
type NoopEmissionHooks struct{}

func (NoopEmissionHooks) OnEmission(EmissionEvent) {}

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnResolve(string, string, string, bool)        {}
func (NoopRegistryHooks) OnVersionDrift(string, string, string, string) {}

// NoopLookupHooks is a no-op implementation of LookupHooks.
type NoopLookupHooks struct{}

func (NoopLookupHooks) OnLookup(string, string, error) {}

var (
	emissionHooks EmissionHooks = NoopEmissionHooks{}
	registryHooks RegistryHooks = NoopRegistryHooks{}
	lookupHooks   LookupHooks   = NoopLookupHooks{}
	hooksMu       sync.RWMutex
)

// SetEmissionHooks registers custom emission hooks.
// Returns the previously registered hooks so callers can chain or restore.
func SetEmissionHooks(h EmissionHooks) EmissionHooks {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	prev := emissionHooks
	if h != nil {
		emissionHooks = h
	}
	return prev
}

// SetRegistryHooks registers custom registry hooks.
// Returns the previously registered hooks so callers can chain or restore.
func SetRegistryHooks(h RegistryHooks) RegistryHooks {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	prev := registryHooks
	if h != nil {
		registryHooks = h
	}
	return prev
}

// SetLookupHooks registers custom lookup hooks.
// Returns the previously registered hooks so callers can chain or restore.
func SetLookupHooks(h LookupHooks) LookupHooks {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	prev := lookupHooks
	if h != nil {
		lookupHooks = h
	}
	return prev
}

// Emission returns the registered emission hooks.
func Emission() EmissionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return emissionHooks
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Lookup returns the registered lookup hooks.
func Lookup() LookupHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return lookupHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	emissionHooks = NoopEmissionHooks{}
	registryHooks = NoopRegistryHooks{}
	lookupHooks = NoopLookupHooks{}
}
