package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunset/pkg/errors"
	"github.com/matzehuels/sunset/pkg/report"
)

// graphOpts holds flags for the graph command.
type graphOpts struct {
	output string
	format string
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the deprecation graph",
		Long: `Graph renders every tracked package and its deprecation records as a
Graphviz graph. The format follows the output file extension unless
--format is given; with no output file the DOT source goes to stdout.

Examples:
  sunset graph
  sunset graph -o deprecations.svg
  sunset graph -o graph.out --format png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: dot, svg or png")

	return cmd
}

// runGraph builds the DOT source and writes it in the requested format.
func (c *CLI) runGraph(ctx context.Context, opts graphOpts) error {
	format, err := resolveGraphFormat(opts)
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
	spinner.Stop()

	dot := report.ToDOT(p.registry.Framework(), p.registry.Deprecators())

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = report.RenderSVG(dot)
	case "png":
		data, err = report.RenderPNG(dot)
	}
	if err != nil {
		return err
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Rendered %s graph", format)
		printFile(opts.output)
	}
	return nil
}

// resolveGraphFormat picks the output format: the flag wins, then the
// output extension, then DOT.
func resolveGraphFormat(opts graphOpts) (string, error) {
	format := strings.ToLower(opts.format)
	if format == "" && opts.output != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), ".")
	}
	switch format {
	case "", "dot":
		return "dot", nil
	case "svg", "png":
		return format, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (expected dot, svg or png)", format)
	}
}
