package metadata

import (
	"context"
	"fmt"
)

// Provider resolves the version of a package in effect for the current
// environment: from the running binary's build info, a project's go.mod, or
// a remote registry. Version strings pass through unparsed; callers decide
// how to interpret them.
//
// Every Provider satisfies the deprecation registry's lookup interface.
type Provider interface {
	InstalledVersion(ctx context.Context, name string) (string, error)
}

// Chain tries providers in order and returns the first successful
// resolution. When every provider fails, the last error is returned.
type Chain []Provider

func (c Chain) InstalledVersion(ctx context.Context, name string) (string, error) {
	var lastErr error
	for _, p := range c {
		version, err := p.InstalledVersion(ctx, name)
		if err == nil {
			return version, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("package %s: empty provider chain: %w", name, ErrNotFound)
	}
	return "", lastErr
}
