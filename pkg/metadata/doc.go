// Package metadata resolves installed package versions from local and
// remote sources.
//
// # Overview
//
// This package answers one question for the deprecation registry: what
// version of a package is in effect here? Each source is a [Provider]:
//
//   - [BuildInfo]: the running binary's embedded module info
//   - [GoMod]: a project's go.mod require entries
//   - [goproxy]: the Go module proxy @latest endpoint
//   - [pypi]: the Python Package Index JSON API
//
// Providers compose: [Chain] tries sources in order, and [Router] dispatches
// package-URL names ("pkg:golang/github.com/user/repo", "pkg:pypi/requests")
// to the provider registered for their ecosystem while bare names go to a
// primary provider.
//
// # Provider Pattern
//
// All providers implement the same single-method interface:
//
//	lookup := metadata.Chain{
//	    metadata.NewGoMod("."),
//	    metadata.BuildInfo{},
//	}
//	version, err := lookup.InstalledVersion(ctx, "github.com/spf13/cobra")
//
// The deprecation registry accepts any Provider as its version lookup.
//
// # Remote Clients
//
// The registry subpackages wrap the shared [Client], which handles:
//   - HTTP requests with retry, backoff, and per-host circuit breaking
//   - Response caching through a [cache.Cache] backend with TTL
//   - Status mapping (404 is [ErrNotFound], 429/5xx are retryable)
//
// # Adding a New Registry
//
// To add support for a new package registry:
//
//  1. Create a subpackage: pkg/metadata/<registry>/
//  2. Define response structs matching the API schema
//  3. Implement a Client with a Latest method and an InstalledVersion
//     adapter
//  4. Use [NewClient] for HTTP with caching
//  5. Register it on the [Router] under its package-URL type
//
// [goproxy]: github.com/matzehuels/sunset/pkg/metadata/goproxy
// [pypi]: github.com/matzehuels/sunset/pkg/metadata/pypi
// [cache.Cache]: github.com/matzehuels/sunset/pkg/cache.Cache
package metadata
