package manifest

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunset/pkg/errors"
)

// Filename is the manifest file name looked up by [Find].
const Filename = "sunset.toml"

// File is a parsed sunset.toml manifest.
//
// The manifest declares the project's own deprecations plus any additional
// tracked packages, so teams can keep deprecation schedules in configuration
// next to the code instead of scattering declarations across call sites.
type File struct {
	Project      Project   `toml:"project"`
	Deprecations []Record  `toml:"deprecations"`
	Packages     []Package `toml:"packages"`

	path string
}

// Project identifies the package the manifest belongs to.
type Project struct {
	Name      string `toml:"name"`
	Version   string `toml:"version"`   // empty defers to registry resolution
	Framework string `toml:"framework"` // registry identity, defaults to Name
}

// Package declares an additional tracked package with its own records.
type Package struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"` // empty defers to registry resolution
	Deprecations []Record `toml:"deprecations"`
}

// Record is one declared deprecation. Empty boundary fields take the core
// defaults: gone_in falls back to the package's current version and warn_in
// to the smaller of current and gone_in.
type Record struct {
	Message     string `toml:"message"`
	WarnIn      string `toml:"warn_in"`
	GoneIn      string `toml:"gone_in"`
	ReplaceWith string `toml:"replace_with"`
	Locator     string `toml:"locator"`
}

// Path returns the location the manifest was loaded from.
func (f *File) Path() string { return f.path }

// Framework returns the registry identity: the explicit framework when set,
// the project name otherwise.
func (f *File) Framework() string {
	if f.Project.Framework != "" {
		return f.Project.Framework
	}
	return f.Project.Name
}

// Load reads and validates the manifest at path.
//
// Returns a FILE_NOT_FOUND error when the file does not exist and an
// INVALID_CONFIG error for unreadable, unparseable, or structurally invalid
// manifests.
func Load(path string) (*File, error) {
	if err := errors.ValidateManifestPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read manifest %s", path)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse manifest %s", path)
	}
	f.path = path

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Find walks from dir up through its parents looking for a manifest file.
// It returns the path of the first one found, or a FILE_NOT_FOUND error when
// the filesystem root is reached without a hit.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve directory %s", dir)
	}

	for {
		path := filepath.Join(dir, Filename)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.ErrCodeFileNotFound, "no %s found in %s or any parent", Filename, dir)
		}
		dir = parent
	}
}

func (f *File) validate() error {
	if f.Project.Name == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "manifest %s: project.name is required", f.path)
	}
	if err := errors.ValidatePackageName(f.Project.Name); err != nil {
		return err
	}

	if err := validateRecords(f.path, f.Project.Name, f.Deprecations); err != nil {
		return err
	}

	for i, pkg := range f.Packages {
		if pkg.Name == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "manifest %s: packages[%d] is missing a name", f.path, i)
		}
		if err := errors.ValidatePackageName(pkg.Name); err != nil {
			return err
		}
		if err := validateRecords(f.path, pkg.Name, pkg.Deprecations); err != nil {
			return err
		}
	}
	return nil
}

func validateRecords(path, pkg string, records []Record) error {
	for i, rec := range records {
		if rec.Message == "" {
			return errors.New(errors.ErrCodeInvalidConfig,
				"manifest %s: %s deprecations[%d] is missing a message", path, pkg, i)
		}
	}
	return nil
}
