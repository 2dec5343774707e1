package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunset/pkg/manifest"
)

// initOpts holds flags for the init command.
type initOpts struct {
	name    string
	version string
	force   bool
}

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	opts := initOpts{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter manifest in the current directory",
		Long: `Init writes a commented sunset.toml next to your code. The project name
defaults to the module path's last element when a go.mod is present,
otherwise to the directory name.

Examples:
  sunset init
  sunset init --name acme-api --version 1.4.0
  sunset init --manifest ./configs/sunset.toml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "project name (default: module or directory name)")
	cmd.Flags().StringVar(&opts.version, "version", "", "pin the project version instead of resolving it")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing manifest")

	return cmd
}

// runInit scaffolds the manifest and prints where it landed.
func (c *CLI) runInit(opts initOpts) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	path := c.manifest
	if path == "" {
		path = filepath.Join(cwd, manifest.Filename)
	}

	name := opts.name
	if name == "" {
		name = moduleName(cwd)
	}
	if name == "" {
		name = filepath.Base(cwd)
	}

	if err := manifest.Scaffold(path, name, opts.version, opts.force); err != nil {
		return err
	}

	printSuccess("Created manifest for %s", name)
	printFile(path)
	printNewline()
	printNextStep("Inspect tracked deprecations", "sunset show")
	return nil
}
