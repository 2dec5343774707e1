// Package pkg provides the core libraries for Sunset deprecation tracking.
//
// # Overview
//
// Sunset declares, classifies, and reports API deprecations across package
// versions. A deprecation names the version it starts warning in and the
// version it is gone by; Sunset compares both against the package's current
// version and classifies the record as pending, active, or expired. The pkg
// directory is organized into four main areas:
//
//  1. [deprecation] - Domain logic (records, classification, registries)
//  2. [metadata] - Installed-version resolution (build info, go.mod, registries)
//  3. [report] - Reporting (filters, tables, JSON, Graphviz schedules)
//  4. [manifest] - Configuration (sunset.toml declarations)
//
// # Architecture
//
// The typical data flow through Sunset:
//
//	sunset.toml / Define calls
//	         ↓
//	    [deprecation] package (resolve version, classify records)
//	         ↓
//	    [report] package (filter + build reports)
//	         ↓
//	    table/JSON/DOT/SVG/PNG output
//
// # Quick Start
//
// Declare a deprecation and emit it from the code path it covers:
//
//	import (
//	    "github.com/matzehuels/sunset/pkg/deprecation"
//	)
//
//	var dep = deprecation.MustNew("payments-sdk", deprecation.MustVersion("1.4.0"))
//
//	var legacyCharge = dep.MustDefine("the v1 charge endpoint is being replaced",
//	    deprecation.WithWarnIn("1.2.0"),
//	    deprecation.WithGoneIn("2.0.0"),
//	    deprecation.WithReplaceWith("Charges.CreateV2"))
//
//	func CreateCharge() {
//	    legacyCharge.Emit()
//	    // ...
//	}
//
// # Main Packages
//
// ## Domain Logic
//
// [deprecation] - Records, the pending/active/expired lifecycle, semantic
// version handling, deprecators, and the per-framework registry that resolves
// package versions on first use.
//
// [discovery] - A process-wide catalog where libraries register their
// deprecators and registries by name, so hosts can enumerate and validate
// every integrated package.
//
// ## Version Resolution
//
// [metadata] - Installed-version providers: the running binary's build info,
// a project's go.mod, and registry clients for the Go module proxy and PyPI,
// routed by package-URL ecosystem. Backed by [cache] and [httputil].
//
// ## Reporting
//
// [report] - Lifecycle filters, terminal tables, JSON export, and Graphviz
// deprecation schedules (DOT, SVG, PNG).
//
// ## Configuration
//
// [manifest] - The sunset.toml model: find, load, validate, scaffold, and
// apply manifests to a registry.
//
// ## Infrastructure
//
// [errors] - Coded errors with user messages and process exit codes.
//
// [hooks] - Process-wide observer hooks for emissions, registry resolution,
// and metadata lookups. Libraries publish events; hosts decide what to do
// with them.
//
// [cache] - File, Redis, null, and scoped cache backends for registry
// responses.
//
// [httputil] - The shared HTTP stack for registry clients: retrying
// transport, circuit breaker, DNS caching.
//
// [deptest] - Test-session integration that collects emissions during a test
// run and fails it when expired deprecations fire.
//
// [buildinfo] - Binary version information for --version output.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/deprecation/...        # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include integration tests
//
// [deprecation]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/deprecation
// [discovery]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/discovery
// [metadata]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/metadata
// [report]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/report
// [manifest]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/manifest
// [errors]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/errors
// [hooks]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/hooks
// [cache]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/httputil
// [deptest]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/deptest
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sunset/pkg/buildinfo
package pkg
