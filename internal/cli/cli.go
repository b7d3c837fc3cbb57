// Package cli implements the bino command-line interface.
//
// The CLI exposes one subcommand per plot mode (hist1d, hist2d, max1d,
// ... graph2d) plus list, colors, colormaps, serve and completion. All
// commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so the pipeline can report progress.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/binoviz/bino/pkg/buildinfo"
	"github.com/binoviz/bino/pkg/cache"
	"github.com/binoviz/bino/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "bino"

// figureCacheTTL bounds how long rendered figures stay in the local
// file cache.
const figureCacheTTL = 24 * time.Hour

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a CLI instance with a logger and the user config, if one
// exists. A broken config file is reported and ignored.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	cfg, err := LoadConfig(configPath())
	if err != nil {
		c.Logger.Warn("ignoring config file", "err", err)
	} else {
		c.Config = cfg
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Bino plots binned datasets directly in the terminal",
		Long:         `Bino bins numeric datasets into colored terminal figures: histograms, profiles, posteriors, likelihood-ratio maps and function graphs, all as plain styled text rows.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	for _, spec := range modeSpecs {
		root.AddCommand(c.modeCommand(spec))
	}
	root.AddCommand(c.listCommand())
	root.AddCommand(c.colorsCommand())
	root.AddCommand(c.colormapsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(newCache(noCache), figureCacheTTL, c.Logger)
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/bino/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
