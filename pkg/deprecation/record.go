package deprecation

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/matzehuels/sunset/pkg/hooks"
)

// replacementFormat is the suffix appended to a message when a replacement
// suggestion was supplied at declaration time.
const replacementFormat = "\n\na replacement might be: %s"

// Record is one declared deprecation.
//
// A Record is immutable once created: its lifecycle state is computed at
// declaration time against the owning deprecator's version and never
// re-evaluated. The only lazily computed field is the locator, which is
// resolved at most once and cached, including an absent result.
type Record struct {
	framework string
	pkg       string
	message   string
	warnIn    Version
	goneIn    Version
	current   Version
	state     State

	locMu    sync.Mutex
	locator  string
	locKnown bool
	resolver LocatorResolver
}

// Package returns the name of the package the deprecation belongs to.
func (r *Record) Package() string { return r.pkg }

// Message returns the deprecation message, including any replacement suffix.
func (r *Record) Message() string { return r.message }

// WarnIn returns the version from which the deprecation warns.
func (r *Record) WarnIn() Version { return r.warnIn }

// GoneIn returns the version by which the deprecated API must be removed.
func (r *Record) GoneIn() Version { return r.goneIn }

// Current returns the package version the record was classified against.
func (r *Record) Current() Version { return r.current }

// State returns the lifecycle state fixed at declaration time.
func (r *Record) State() State { return r.state }

// Locator returns a human-readable path identifying where the deprecation is
// defined, and whether one is known.
//
// When no explicit locator was supplied at declaration, the deprecator's
// resolver is consulted once and the outcome cached, so repeat reads never
// re-resolve even if the resolver would now answer differently.
func (r *Record) Locator() (string, bool) {
	r.locMu.Lock()
	defer r.locMu.Unlock()

	if !r.locKnown {
		r.locKnown = true
		if r.resolver != nil {
			if loc, ok := r.resolver.Resolve(r); ok {
				r.locator = loc
			}
		}
	}
	return r.locator, r.locator != ""
}

// Emit reports one occurrence of the deprecated API being used, capturing
// the caller's file and line as the emission site.
//
// Emitting is valid in any lifecycle state; observers registered through
// pkg/hooks decide what to do with each state.
func (r *Record) Emit() {
	file, line := callSite(2)
	r.emit(file, line)
}

// EmitAt reports an occurrence with an explicitly supplied site, for callers
// that forward deprecation warnings from somewhere other than the immediate
// call site.
func (r *Record) EmitAt(file string, line int) {
	r.emit(file, line)
}

func (r *Record) emit(file string, line int) {
	loc, _ := r.Locator()
	hooks.Emission().OnEmission(hooks.EmissionEvent{
		Framework: r.framework,
		Package:   r.pkg,
		Message:   r.message,
		State:     r.state.String(),
		WarnIn:    r.warnIn.String(),
		GoneIn:    r.goneIn.String(),
		Current:   r.current.String(),
		Locator:   loc,
		File:      file,
		Line:      line,
	})
}

// emitSkip reports an occurrence attributed to the caller skip frames up the
// stack. Used by the wrap helpers so emissions point at the wrapped call's
// invoker instead of the wrapper closure.
func (r *Record) emitSkip(skip int) {
	file, line := callSite(skip + 1)
	r.emit(file, line)
}

func callSite(skip int) (string, int) {
	if _, file, line, ok := runtime.Caller(skip); ok {
		return file, line
	}
	return "", 0
}

// String renders a short one-line description, useful in logs and panics.
func (r *Record) String() string {
	return fmt.Sprintf("%s deprecation in %s (warn %s, gone %s): %s",
		r.state, r.pkg, r.warnIn, r.goneIn, firstLine(r.message))
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
