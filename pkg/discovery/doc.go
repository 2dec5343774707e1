// Package discovery holds the process-wide catalog of published deprecators
// and registries, so validation and listing tools can find every declaration
// without knowing the packages that own them.
//
// Packages publish themselves from an init function:
//
//	func init() {
//		discovery.MustRegisterDeprecator("acme-api", func() *deprecation.Deprecator {
//			return apiDeprecator
//		})
//	}
//
// and tooling imports them blank to trigger registration:
//
//	import (
//		"github.com/matzehuels/sunset/pkg/discovery"
//		_ "example.com/acme/api/deprecations"
//	)
//
//	for _, name := range discovery.DeprecatorNames() {
//		d, _ := discovery.ResolveDeprecator(name)
//		fmt.Println(name, d.Len())
//	}
//
// Validate checks the whole catalog at once: every factory must yield a
// non-nil object whose declared package or framework matches the name it was
// registered under.
package discovery
