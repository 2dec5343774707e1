package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunset/pkg/hooks"
)

// logHooks forwards deprecation events to the CLI logger. The core library
// never logs on its own; this is where emissions, version drift and metadata
// lookups become terminal output.
type logHooks struct {
	logger *log.Logger
}

// installLogHooks registers the logger as the process-wide hook observer.
func installLogHooks(logger *log.Logger) {
	h := &logHooks{logger: logger}
	hooks.SetEmissionHooks(h)
	hooks.SetRegistryHooks(h)
	hooks.SetLookupHooks(h)
}

// OnEmission logs reported deprecation occurrences, escalating by state:
// pending records only show up with --verbose, expired ones log as errors.
func (h *logHooks) OnEmission(e hooks.EmissionEvent) {
	logFn := h.logger.Warn
	switch e.State {
	case "pending":
		logFn = h.logger.Debug
	case "expired":
		logFn = h.logger.Error
	}

	args := []any{
		"package", e.Package,
		"state", e.State,
		"gone_in", e.GoneIn,
	}
	if e.File != "" {
		args = append(args, "site", fmt.Sprintf("%s:%d", e.File, e.Line))
	}
	logFn("deprecated: "+firstLine(e.Message), args...)
}

func (h *logHooks) OnResolve(framework, pkg, version string, cached bool) {
	h.logger.Debug("resolved package",
		"framework", framework,
		"package", pkg,
		"version", version,
		"cached", cached)
}

func (h *logHooks) OnVersionDrift(framework, pkg, held, requested string) {
	h.logger.Warn("version drift, keeping first resolution",
		"framework", framework,
		"package", pkg,
		"held", held,
		"requested", requested)
}

func (h *logHooks) OnLookup(pkg, version string, err error) {
	if err != nil {
		h.logger.Debug("version lookup failed", "package", pkg, "error", err)
		return
	}
	h.logger.Debug("version lookup", "package", pkg, "version", version)
}
