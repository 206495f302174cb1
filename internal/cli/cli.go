package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/waterants/sketchcoach/pkg/analysis"
	"github.com/waterants/sketchcoach/pkg/buildinfo"
	"github.com/waterants/sketchcoach/pkg/cache"
	"github.com/waterants/sketchcoach/pkg/config"
	"github.com/waterants/sketchcoach/pkg/pipeline"
	"github.com/waterants/sketchcoach/pkg/tasks"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sketchcoach"

	// configEnv names the environment variable consulted when --config is unset.
	configEnv = "SKETCHCOACH_CONFIG"
)

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

	configPath string
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
	root := &cobra.Command{
		Use:          appName,
		Short:        "sketchcoach scores drawing practice and suggests the next task",
		Long:         `sketchcoach accepts drawings with optional stroke data, scores them against the prompt, and replies with feedback and the next drawing task. Run "sketchcoach serve" for the HTTP API or "sketchcoach analyze" to try a drawing locally.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a TOML config file (env "+configEnv+")")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.taskCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads the config named by --config, falling back to
// $SKETCHCOACH_CONFIG, then to defaults plus environment.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	return config.Load(path)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for cfg. The returned cache must be
// closed by the caller.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, opts cache.Options) (*pipeline.Runner, cache.Cache, error) {
	logger := loggerFromContext(ctx)
	installLogHooks(logger)

	store, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Cache.Namespace)
	analyzer := analysis.NewAnalyzer(nil, cfg.MaxImageDimension, logger)
	analyzer.MaxPixels = cfg.MaxImagePixels
	selector := tasks.NewFixedSelector(cfg.NextTask)

	return pipeline.NewRunner(analyzer, nil, selector, store, keyer, logger), store, nil
}

// localCacheOptions picks the cache for one-shot CLI runs. A configured
// backend wins; otherwise results go to the per-user file cache.
func localCacheOptions(cfg config.Config, noCache bool) cache.Options {
	if noCache {
		return cache.Options{Backend: cache.BackendNone}
	}
	opts := cfg.CacheOptions()
	if opts.Backend != "" && opts.Backend != cache.BackendNone {
		return opts
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.Options{Backend: cache.BackendNone}
	}
	return cache.Options{Backend: cache.BackendFile, Dir: dir}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sketchcoach/).
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

// fileCacheDir is the directory "cache clear" and "cache path" manage: the
// configured file cache, or the per-user default.
func fileCacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Backend == cache.BackendFile && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}
