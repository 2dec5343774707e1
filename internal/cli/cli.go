// Package cli implements the sunset command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunset/pkg/buildinfo"
	"github.com/matzehuels/sunset/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "sunset"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flags shared by every command.
	verbose  bool
	noCache  bool
	cacheDir string
	redisURL string
	manifest string
	refresh  bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	buildinfo.Resolve()

	root := &cobra.Command{
		Use:           appName,
		Short:         "Sunset tracks API deprecations across package versions",
		Long:          `Sunset declares, classifies, and reports API deprecations. Each deprecation carries a warn-from and a gone-by version; sunset classifies it against the package's current version and reports what is pending, active, or already expired.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			installLogHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the metadata cache")
	pf.StringVar(&c.cacheDir, "cache-dir", "", "metadata cache directory (default ~/.cache/sunset)")
	pf.StringVar(&c.redisURL, "redis", "", "redis URL for the metadata cache (overrides --cache-dir)")
	pf.StringVar(&c.manifest, "manifest", "", "path to sunset.toml (default: search upward from the working directory)")
	pf.BoolVar(&c.refresh, "refresh", false, "bypass cached registry responses")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Backend
// =============================================================================

// newBackend builds the metadata cache backend selected by the persistent
// flags: redis when --redis is set, no caching with --no-cache, and the
// file cache otherwise. Callers own the returned backend and must close it.
func (c *CLI) newBackend(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisURL != "" {
		return cache.NewRedisCache(ctx, c.redisURL)
	}
	dir := c.cacheDir
	if dir == "" {
		var err error
		if dir, err = defaultCacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// defaultCacheDir returns the cache directory using XDG standard (~/.cache/sunset/).
func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
