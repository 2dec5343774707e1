package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunset/pkg/deprecation"
	"github.com/matzehuels/sunset/pkg/discovery"
	"github.com/matzehuels/sunset/pkg/errors"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [package|registrations]",
		Short: "Fail when expired deprecations exist",
		Long: `Validate scans tracked packages for deprecations that are past their
removal version and exits non-zero when any are found, which makes it
suitable as a CI gate.

With no argument every package in the manifest is checked. Passing a
package name restricts the scan to that package. The special argument
"registrations" checks the discovery catalog for inconsistent entries
instead of scanning records.

Examples:
  sunset validate
  sunset validate acme-api
  sunset validate registrations`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			if target == "registrations" {
				return c.runValidateRegistrations()
			}
			return c.runValidate(cmd.Context(), target)
		},
	}
}

// runValidate resolves the manifest packages and reports expired records.
func (c *CLI) runValidate(ctx context.Context, name string) error {
	spinner := newSpinnerWithContext(ctx, "Resolving package versions...")
	spinner.Start()
	p, err := c.openProject(ctx)
	if err != nil {
		spinner.StopWithError("Failed to load project")
		return err
	}
	defer p.Close()

	var deps []*deprecation.Deprecator
	if name != "" {
		d, ok := p.registry.Get(name)
		if !ok {
			spinner.StopWithError("Unknown package")
			return errors.New(errors.ErrCodeNotFound, "package %q is not tracked in the manifest", name)
		}
		deps = append(deps, d)
	} else {
		deps = p.registry.Deprecators()
	}
	spinner.Stop()

	var active, expired int
	for _, d := range deps {
		for _, rec := range d.Records() {
			switch rec.State() {
			case deprecation.Active:
				active++
			case deprecation.Expired:
				expired++
				printError("%s", rec.String())
			}
		}
	}

	if expired > 0 {
		return errors.New(errors.ErrCodeExpiredFound, "%d expired deprecation(s)", expired)
	}
	printSuccess("No expired deprecations in %d package(s)", len(deps))
	if active > 0 {
		printWarning("%d active deprecation(s) will expire in a future version", active)
	}
	return nil
}

// runValidateRegistrations checks the discovery catalog for entries whose
// declared identity does not match their registration key.
func (c *CLI) runValidateRegistrations() error {
	problems := discovery.Validate()
	if len(problems) == 0 {
		total := len(discovery.DeprecatorNames()) + len(discovery.RegistryNames())
		printSuccess("%d registration(s) are consistent", total)
		return nil
	}
	for _, err := range problems {
		printError("%s", err)
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%d inconsistent registration(s)", len(problems))
}
