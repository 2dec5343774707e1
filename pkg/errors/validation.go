package errors

import (
	"strings"
	"unicode"
)

// SyntheticPrefix marks package names that are synthetic/test identities.
// Synthetic packages bypass metadata lookups and must supply their version
// explicitly.
const SyntheticPrefix = ":"

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //)
//   - No null bytes or backslashes
//   - Maximum length of 256 characters
//
// A leading colon marks a synthetic identity and is allowed; everything after
// the colon is validated like a regular name.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	rest := strings.TrimPrefix(name, SyntheticPrefix)
	if rest == "" {
		return New(ErrCodeInvalidPackage, "synthetic package name cannot be bare %q", SyntheticPrefix)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// IsSynthetic reports whether a package name is a synthetic/test identity.
func IsSynthetic(name string) bool {
	return strings.HasPrefix(name, SyntheticPrefix)
}

// ValidateManifestPath validates a manifest file path for safety.
// It prevents path traversal and ensures a reasonable length.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidConfig, "manifest path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidConfig, "manifest path too long (max 500 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "manifest path contains invalid control characters")
		}
	}

	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidConfig, "manifest path contains null bytes")
	}

	return nil
}
