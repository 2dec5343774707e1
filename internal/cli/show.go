package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunset/pkg/deprecation"
	"github.com/matzehuels/sunset/pkg/report"
)

// showOpts holds the command-line flags for the show command.
type showOpts struct {
	states      string // comma-separated lifecycle states
	all         bool   // include every state
	asJSON      bool   // machine-readable output
	output      string // output file path (stdout if empty)
	version     string // explicit version for the named package
	interactive bool   // bubbletea record browser
}

// showCommand creates the show command for inspecting tracked deprecations.
func (c *CLI) showCommand() *cobra.Command {
	var opts showOpts

	cmd := &cobra.Command{
		Use:   "show [package]",
		Short: "Show tracked deprecations",
		Long: `Show the deprecations tracked for the project.

Without arguments, every package in the manifest is shown. Name a package to
show just its records; packages outside the manifest resolve their installed
version on the fly (pin one with --version).

By default only active and expired deprecations are listed. Use --states to
pick lifecycle states explicitly, or --all for everything.

Examples:
  sunset show
  sunset show payments-sdk
  sunset show requests --version 2.31.0 --all
  sunset show --states expired --json -o expired.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return c.runShow(cmd.Context(), name, opts)
		},
	}

	cmd.Flags().StringVar(&opts.states, "states", "", "lifecycle states to include: pending,active,expired (default active,expired)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "include every lifecycle state")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "write JSON instead of a table")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.version, "version", "", "explicit version for the named package")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse records interactively")

	return cmd
}

// runShow resolves the project and renders the selected reports.
func (c *CLI) runShow(ctx context.Context, name string, opts showOpts) error {
	filter, err := parseFilter(opts.all, opts.states)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Resolving package versions...")
	spinner.Start()

	p, err := c.openProject(ctx)
	if err != nil {
		spinner.StopWithError("Failed to load project")
		return err
	}
	defer p.Close()

	deps := p.registry.Deprecators()
	if name != "" {
		d, err := c.lookupDeprecator(ctx, p, name, opts.version)
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Failed to resolve %s", name))
			return err
		}
		deps = []*deprecation.Deprecator{d}
	}
	spinner.Stop()

	reports := report.BuildAll(deps, filter)

	if opts.interactive {
		return browseReports(reports)
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if opts.asJSON {
		if name != "" {
			return report.WriteJSON(reports[0], out)
		}
		return report.WriteJSON(reports, out)
	}

	if len(reports) == 0 {
		printInfo("No packages tracked")
		return nil
	}
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := report.RenderTable(out, r); err != nil {
			return err
		}
	}
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

// lookupDeprecator resolves one package through the project registry:
// already-tracked packages come from the cache, others resolve fresh.
func (c *CLI) lookupDeprecator(ctx context.Context, p *project, name, version string) (*deprecation.Deprecator, error) {
	if version != "" {
		return p.registry.ForPackageVersion(ctx, name, version)
	}
	if d, ok := p.registry.Get(name); ok {
		return d, nil
	}
	return p.registry.ForPackage(ctx, name)
}

// parseFilter maps the --all/--states flags to a report filter.
func parseFilter(all bool, states string) (report.Filter, error) {
	if all {
		return report.All(), nil
	}
	return report.ParseStates(states)
}
