package deprecation

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/sunset/pkg/errors"
)

// Version is a parsed semantic version with a total ordering.
//
// Versions accept an optional "v" prefix, pre-release suffixes ("2.0.0-rc1")
// and build metadata ("2.0.0+local"). Ordering follows semver precedence, so
// build metadata never influences comparisons.
//
// The zero Version is invalid; obtain values through [ParseVersion] or
// [MustVersion].
type Version struct {
	v *semver.Version
}

// ParseVersion parses s into a Version.
// Returns an INVALID_VERSION error carrying the offending string when s is
// not a parseable semantic version.
func ParseVersion(s string) (Version, error) {
	parsed, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return Version{}, errors.Wrap(errors.ErrCodeInvalidVersion, err, "invalid version %q", s)
	}
	return Version{v: parsed}, nil
}

// MustVersion parses s and panics on failure.
// Intended for package-level declarations and tests with known-good input.
func MustVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v is the invalid zero Version.
func (v Version) IsZero() bool { return v.v == nil }

// String returns the canonical string form, or "" for the zero Version.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Compare returns -1, 0, or 1 if v is less than, equal to, or greater
// than other, by semver precedence.
func (v Version) Compare(other Version) int {
	return v.v.Compare(other.v)
}

// LessThan reports whether v sorts strictly before other.
func (v Version) LessThan(other Version) bool { return v.Compare(other) < 0 }

// AtMost reports whether v sorts before or equal to other.
func (v Version) AtMost(other Version) bool { return v.Compare(other) <= 0 }

// Equal reports whether v and other have equal precedence.
// Versions differing only in build metadata are equal.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// MinVersion returns the smaller of a and b, preferring a on ties.
func MinVersion(a, b Version) Version {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}
