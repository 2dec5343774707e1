package metadata

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/git-pkgs/purl"

	"github.com/matzehuels/sunset/pkg/errors"
)

// purlPrefix marks package-URL names ("pkg:golang/github.com/user/repo").
const purlPrefix = "pkg:"

// Router dispatches version lookups by package identity. Package-URL names
// route to the provider registered for their ecosystem; bare names go to
// the primary provider.
type Router struct {
	primary Provider

	mu        sync.RWMutex
	ecosystem map[string]Provider
}

// NewRouter returns a router sending bare names to primary. Ecosystem
// providers are attached with [Router.Register].
func NewRouter(primary Provider) *Router {
	return &Router{
		primary:   primary,
		ecosystem: make(map[string]Provider),
	}
}

// Register routes the package-URL type (e.g. "golang", "pypi") to p.
// Later registrations replace earlier ones.
func (r *Router) Register(ecosystem string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ecosystem[ecosystem] = p
}

func (r *Router) InstalledVersion(ctx context.Context, name string) (string, error) {
	if !strings.HasPrefix(name, purlPrefix) {
		if r.primary == nil {
			return "", fmt.Errorf("package %s: no primary provider: %w", name, ErrNotFound)
		}
		return r.primary.InstalledVersion(ctx, name)
	}

	p, err := purl.Parse(name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPackage, err, "invalid package URL %q", name)
	}

	r.mu.RLock()
	provider, ok := r.ecosystem[p.Type]
	r.mu.RUnlock()
	if !ok {
		return "", errors.New(errors.ErrCodeUnsupported, "no provider for ecosystem %q", p.Type)
	}

	return provider.InstalledVersion(ctx, p.FullName())
}
