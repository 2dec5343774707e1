// Package deprecation declares, classifies, and reports API deprecations
// across packages keyed by semantic version.
//
// # Overview
//
// A deprecation is declared once, against the version of the package it
// lives in, with two boundaries: the version from which it warns (warn-in)
// and the version by which the API must be gone (gone-in). From those
// boundaries and the package's current version every declaration is
// classified into exactly one lifecycle state the moment it is created:
//
//   - [Pending]: the current version has not reached the warn boundary yet
//   - [Active]: warning phase, the API still works but is on notice
//   - [Expired]: the removal version has been reached, the API must go
//
// Classification never changes afterwards. Bumping the package version and
// re-running declarations is what moves records through the lifecycle.
//
// # Basic Usage
//
// Create a [Deprecator] for a package at its current version and declare
// deprecations through [Deprecator.Define]:
//
//	dep := deprecation.MustNew("payments", deprecation.MustVersion("1.4.0"))
//
//	var OldCharge = dep.MustDefine("Charge is deprecated",
//	    deprecation.WithWarnIn("1.4.0"),
//	    deprecation.WithGoneIn("2.0.0"),
//	    deprecation.WithReplaceWith("ChargeWithContext"))
//
// Both boundaries default when omitted: gone-in falls back to the current
// version and warn-in to the smaller of current and gone-in, so a bare
// Define marks an API as expired immediately.
//
// Report usages of the deprecated API with [Record.Emit], or wrap the old
// entry point with [Wrap], [WrapErr], [WrapCall] or [WrapHandler] so every
// call reports itself. Emissions are delivered to whatever observers are
// registered in pkg/hooks and are silent by default.
//
// # Registries
//
// A [Registry] shares one deprecator per package under a framework identity,
// resolving package versions on first use through a [VersionLookup]:
//
//	reg := deprecation.NewRegistry("fastapi")
//	dep, err := reg.ForPackage(ctx, "github.com/acme/payments")
//
// Synthetic components that are not installable packages use a ":" name
// prefix and must be resolved with an explicit version through
// [Registry.ForPackageVersion].
//
// # Concurrency
//
// Deprecators, registries, and records are safe for concurrent use. The
// one lazily computed field, a record's locator, is resolved at most once
// and cached, including an absent result.
package deprecation
