package manifest

import (
	"context"

	"github.com/matzehuels/sunset/pkg/deprecation"
)

// Apply resolves every package the manifest declares through the registry
// and defines its records.
//
// Packages with an explicit version pin it on first resolution; packages
// without one use the registry's version lookup. Declaration errors
// (unresolvable packages, invalid versions, inverted boundaries) surface
// with their original codes. Applying the same manifest twice defines every
// record twice; records are never deduplicated.
func (f *File) Apply(ctx context.Context, reg *deprecation.Registry) error {
	if err := applyPackage(ctx, reg, f.Project.Name, f.Project.Version, f.Deprecations); err != nil {
		return err
	}
	for _, pkg := range f.Packages {
		if err := applyPackage(ctx, reg, pkg.Name, pkg.Version, pkg.Deprecations); err != nil {
			return err
		}
	}
	return nil
}

func applyPackage(ctx context.Context, reg *deprecation.Registry, name, version string, records []Record) error {
	var (
		d   *deprecation.Deprecator
		err error
	)
	if version != "" {
		d, err = reg.ForPackageVersion(ctx, name, version)
	} else {
		d, err = reg.ForPackage(ctx, name)
	}
	if err != nil {
		return err
	}

	for _, rec := range records {
		if _, err := d.Define(rec.Message, rec.defineOptions()...); err != nil {
			return err
		}
	}
	return nil
}

func (r Record) defineOptions() []deprecation.DefineOption {
	var opts []deprecation.DefineOption
	if r.WarnIn != "" {
		opts = append(opts, deprecation.WithWarnIn(r.WarnIn))
	}
	if r.GoneIn != "" {
		opts = append(opts, deprecation.WithGoneIn(r.GoneIn))
	}
	if r.ReplaceWith != "" {
		opts = append(opts, deprecation.WithReplaceWith(r.ReplaceWith))
	}
	if r.Locator != "" {
		opts = append(opts, deprecation.WithLocator(r.Locator))
	}
	return opts
}
