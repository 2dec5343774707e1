package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunset/pkg/deprecation"
	"github.com/matzehuels/sunset/pkg/discovery"
	"github.com/matzehuels/sunset/pkg/errors"
)

// packageRow is one line of the list output.
type packageRow struct {
	name    string
	version string
	pending int
	active  int
	expired int
	source  string
}

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked packages with record counts",
		Long: `List every package sunset knows about: the packages declared in the
manifest plus any deprecators and registries published through the discovery
catalog, with per-state record counts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.Context())
		},
	}
}

// runList merges manifest packages with discovery registrations and renders
// the count table. A missing manifest is tolerated when the discovery
// catalog has entries to show.
func (c *CLI) runList(ctx context.Context) error {
	var rows []packageRow

	spinner := newSpinnerWithContext(ctx, "Resolving package versions...")
	spinner.Start()
	p, err := c.openProject(ctx)
	spinner.Stop()
	switch {
	case err == nil:
		defer p.Close()
		rows = appendRows(rows, p.registry.Deprecators(), "manifest")
	case errors.Is(err, errors.ErrCodeFileNotFound) && discoveryHasEntries():
		// Fall through to the registrations below.
	default:
		return err
	}

	for _, name := range discovery.DeprecatorNames() {
		d, err := discovery.ResolveDeprecator(name)
		if err != nil {
			printWarning("skipping deprecator %s: %v", name, err)
			continue
		}
		rows = appendRows(rows, []*deprecation.Deprecator{d}, "registered")
	}
	for _, name := range discovery.RegistryNames() {
		r, err := discovery.ResolveRegistry(name)
		if err != nil {
			printWarning("skipping registry %s: %v", name, err)
			continue
		}
		rows = appendRows(rows, r.Deprecators(), "registry "+name)
	}

	if len(rows) == 0 {
		printInfo("No packages tracked")
		return nil
	}

	fmt.Println(StyleTitle.Render("Tracked packages"))
	fmt.Println(renderPackageTable(rows))
	return nil
}

// appendRows converts deprecators into table rows tagged with their source.
func appendRows(rows []packageRow, deps []*deprecation.Deprecator, source string) []packageRow {
	for _, d := range deps {
		pending, active, expired := countStates(d)
		rows = append(rows, packageRow{
			name:    d.Name(),
			version: d.Version().String(),
			pending: pending,
			active:  active,
			expired: expired,
			source:  source,
		})
	}
	return rows
}

// countStates tallies a deprecator's records per lifecycle state.
func countStates(d *deprecation.Deprecator) (pending, active, expired int) {
	for _, rec := range d.Records() {
		switch rec.State() {
		case deprecation.Pending:
			pending++
		case deprecation.Active:
			active++
		case deprecation.Expired:
			expired++
		}
	}
	return pending, active, expired
}

// renderPackageTable renders the rows as a bordered table, count columns
// colored by state when non-zero.
func renderPackageTable(rows []packageRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			r.name,
			r.version,
			strconv.Itoa(r.pending),
			strconv.Itoa(r.active),
			strconv.Itoa(r.expired),
			r.source,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Package", "Version", "Pending", "Active", "Expired", "Source").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			switch col {
			case 2:
				return StyleDim
			case 3:
				if row >= 0 && row < len(rows) && rows[row].active > 0 {
					return stateStyle(deprecation.Active.String())
				}
				return StyleDim
			case 4:
				if row >= 0 && row < len(rows) && rows[row].expired > 0 {
					return stateStyle(deprecation.Expired.String())
				}
				return StyleDim
			case 5:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// discoveryHasEntries reports whether anything is published in the catalog.
func discoveryHasEntries() bool {
	return len(discovery.DeprecatorNames()) > 0 || len(discovery.RegistryNames()) > 0
}
