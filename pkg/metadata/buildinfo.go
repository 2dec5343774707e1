package metadata

import (
	"context"
	"fmt"
	"runtime/debug"
)

// BuildInfo resolves module versions from the running binary's embedded
// build information. It answers for the main module (when stamped) and for
// every module dependency, honoring replace directives. No I/O is involved.
type BuildInfo struct{}

func (BuildInfo) InstalledVersion(_ context.Context, name string) (string, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", fmt.Errorf("package %s: build info unavailable: %w", name, ErrNotFound)
	}

	if info.Main.Path == name && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version, nil
	}

	for _, dep := range info.Deps {
		if dep.Path != name {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version, nil
		}
		return dep.Version, nil
	}

	return "", fmt.Errorf("module %s not in build info: %w", name, ErrNotFound)
}
