package deprecation

import (
	"fmt"
	"sync"

	"github.com/matzehuels/sunset/pkg/errors"
)

// Option configures a Deprecator at construction time.
type Option func(*Deprecator)

// WithLocatorResolver sets the resolver consulted for records that were
// declared without an explicit locator.
func WithLocatorResolver(r LocatorResolver) Option {
	return func(d *Deprecator) { d.resolver = r }
}

// withFramework stamps the owning registry's identity on the deprecator.
// Standalone deprecators carry no framework.
func withFramework(framework string) Option {
	return func(d *Deprecator) { d.framework = framework }
}

// Deprecator declares and holds the deprecation records of one package at one
// version.
//
// The version is fixed at construction and every record declared through
// Define is classified against it exactly once. Records accumulate in
// declaration order and are never deduplicated, so declaring the same
// deprecation twice yields two records.
//
// A Deprecator is safe for concurrent use.
type Deprecator struct {
	name      string
	version   Version
	framework string
	resolver  LocatorResolver

	mu      sync.Mutex
	records []*Record
}

// New creates a Deprecator for the named package at the given version.
//
// Parameters:
//   - name: package name, or a ":"-prefixed synthetic name for components
//     that are not installable packages (e.g. ":billing-api")
//   - version: the package's current version, used to classify every record
//
// Returns an INVALID_PACKAGE error for malformed names and a MISSING_VERSION
// error when version is the zero value.
func New(name string, version Version, opts ...Option) (*Deprecator, error) {
	if err := errors.ValidatePackageName(name); err != nil {
		return nil, err
	}
	if version.IsZero() {
		return nil, errors.New(errors.ErrCodeMissingVersion, "package %s requires a version", name)
	}

	d := &Deprecator{name: name, version: version}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// MustNew is like New but panics on error. It simplifies package-level
// variable declarations:
//
//	var dep = deprecation.MustNew("payments", deprecation.MustVersion("1.4.0"))
func MustNew(name string, version Version, opts ...Option) *Deprecator {
	d, err := New(name, version, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the package name the deprecator was created for.
func (d *Deprecator) Name() string { return d.name }

// Version returns the package version records are classified against.
func (d *Deprecator) Version() Version { return d.version }

// Framework returns the identity of the owning registry, or "" for a
// standalone deprecator.
func (d *Deprecator) Framework() string { return d.framework }

// defineConfig collects the optional parts of a declaration before
// validation. Parse failures in options are held and surfaced by Define.
type defineConfig struct {
	goneIn    Version
	goneInSet bool
	warnIn    Version
	warnInSet bool
	replace   string
	locator   string
	err       error
}

func (c *defineConfig) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

// DefineOption configures a single declaration made through Define.
type DefineOption func(*defineConfig)

// WithGoneIn sets the version by which the deprecated API must be removed.
// Defaults to the deprecator's current version when omitted.
func WithGoneIn(version string) DefineOption {
	return func(c *defineConfig) {
		v, err := ParseVersion(version)
		if err != nil {
			c.setErr(err)
			return
		}
		c.goneIn, c.goneInSet = v, true
	}
}

// WithGoneInVersion is WithGoneIn for an already parsed version.
func WithGoneInVersion(v Version) DefineOption {
	return func(c *defineConfig) { c.goneIn, c.goneInSet = v, true }
}

// WithWarnIn sets the version from which the deprecation starts warning.
// Defaults to the smaller of the current version and the removal version
// when omitted.
func WithWarnIn(version string) DefineOption {
	return func(c *defineConfig) {
		v, err := ParseVersion(version)
		if err != nil {
			c.setErr(err)
			return
		}
		c.warnIn, c.warnInSet = v, true
	}
}

// WithWarnInVersion is WithWarnIn for an already parsed version.
func WithWarnInVersion(v Version) DefineOption {
	return func(c *defineConfig) { c.warnIn, c.warnInSet = v, true }
}

// WithReplaceWith appends a replacement suggestion to the message. Empty
// suggestions are ignored.
func WithReplaceWith(replacement string) DefineOption {
	return func(c *defineConfig) { c.replace = replacement }
}

// WithLocator sets an explicit definition locator, skipping lazy resolution.
// Empty locators are ignored.
func WithLocator(locator string) DefineOption {
	return func(c *defineConfig) { c.locator = locator }
}

// Define declares a deprecation and returns its record.
//
// The removal boundary defaults to the current version and the warn boundary
// to the smaller of the current and removal versions, so a bare
// Define("msg") yields a record that is expired right away. Boundaries are
// validated before anything is stored: when the removal version is below the
// warn version, Define returns an INVALID_BOUNDARY error and the deprecator
// is left unchanged.
//
// The record's lifecycle state is classified here, against the deprecator's
// version, and never re-evaluated.
func (d *Deprecator) Define(message string, opts ...DefineOption) (*Record, error) {
	var cfg defineConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	goneIn := d.version
	if cfg.goneInSet {
		goneIn = cfg.goneIn
	}
	warnIn := MinVersion(d.version, goneIn)
	if cfg.warnInSet {
		warnIn = cfg.warnIn
	}
	if goneIn.LessThan(warnIn) {
		return nil, errors.New(errors.ErrCodeInvalidBoundary, "gone_in must be greater than or equal to warn_in")
	}

	if cfg.replace != "" {
		message += fmt.Sprintf(replacementFormat, cfg.replace)
	}

	rec := &Record{
		framework: d.framework,
		pkg:       d.name,
		message:   message,
		warnIn:    warnIn,
		goneIn:    goneIn,
		current:   d.version,
		state:     Classify(goneIn, warnIn, d.version),
		resolver:  d.resolver,
	}
	if cfg.locator != "" {
		rec.locator = cfg.locator
		rec.locKnown = true
	}

	d.mu.Lock()
	d.records = append(d.records, rec)
	d.mu.Unlock()
	return rec, nil
}

// MustDefine is like Define but panics on error, for declarations in
// package-level variables where the boundaries are known to be valid.
func (d *Deprecator) MustDefine(message string, opts ...DefineOption) *Record {
	rec, err := d.Define(message, opts...)
	if err != nil {
		panic(err)
	}
	return rec
}

// Records returns the declared records in declaration order. The returned
// slice is a copy; the records themselves are shared.
func (d *Deprecator) Records() []*Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Record, len(d.records))
	copy(out, d.records)
	return out
}

// Len returns the number of declared records.
func (d *Deprecator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}
