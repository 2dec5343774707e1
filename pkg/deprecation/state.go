package deprecation

import (
	"strings"

	"github.com/matzehuels/sunset/pkg/errors"
)

// State classifies a deprecation relative to its package's current version.
type State int

// Lifecycle states, ordered by progression.
const (
	// Pending deprecations have not reached their warn-from boundary yet.
	Pending State = iota

	// Active deprecations have passed warn-from but not their gone-by
	// boundary: the API still works and callers should migrate.
	Active

	// Expired deprecations have reached their gone-by boundary: the API
	// should already have been removed.
	Expired
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Active:
		return "active"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// ParseState converts a state name into a State.
// Matching is case-insensitive. Returns an INVALID_STATE error for
// unrecognized names.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return Pending, nil
	case "active":
		return Active, nil
	case "expired":
		return Expired, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidState, "unknown lifecycle state %q", s)
	}
}

// Classify returns the lifecycle state for the given boundaries and current
// version.
//
// The check order is load-bearing: a deprecation whose gone-by and warn-from
// boundaries are both at or before current is Expired, not Active, and a
// three-way tie resolves to Expired. Classification is a pure function over
// three already-validated versions; it does not re-check goneIn >= warnIn.
func Classify(goneIn, warnIn, current Version) State {
	if goneIn.AtMost(current) {
		return Expired
	}
	if warnIn.AtMost(current) {
		return Active
	}
	return Pending
}
