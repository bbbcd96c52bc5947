// Package cli implements the listviz command-line interface.
//
// This package provides commands for visualizing the physical layout of
// arena-backed lists, rendering DOT files through the embedded Graphviz,
// serving graphs over HTTP, and exploring list operations interactively.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - demo: Emit or render the bundled call-tree example graph
//   - inspect: Apply an operation script to a list and visualize the slots
//   - render: Render DOT files to SVG or PNG, concurrently and cached
//   - serve: Serve graphs and rendered artifacts over HTTP
//   - tui: Explore list operations in an interactive terminal session
//   - cache: Manage the rendered-artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The serve
// command additionally passes request-scoped loggers through
// context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/listviz/listviz/pkg/buildinfo"
	"github.com/listviz/listviz/pkg/cache"
	"github.com/listviz/listviz/pkg/errors"
	"github.com/listviz/listviz/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "listviz"
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
	Config *Config
}

// New creates a new CLI instance with a default logger and default
// configuration. The configuration is replaced from the --config file (or
// ~/.config/listviz/config.toml) before any command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Listviz visualizes arena-backed lists and hash tables",
		Long:         `Listviz builds Graphviz views of slot-arena data structures: every physical slot, every next/prev link, the free ring, and the bucket chains, rendered straight from the live containers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/listviz/config.toml)")

	// Register all subcommands
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Renderer Factory
// =============================================================================

// newRenderer builds the rendering pipeline for CLI use: the embedded
// Graphviz engine, wrapped with the configured artifact cache unless
// caching is disabled. The returned closer releases the cache backend.
func (c *CLI) newRenderer(ctx context.Context, noCache bool) (render.Renderer, func() error) {
	engine := render.NewEngine()
	if noCache || c.Config.Cache.Backend == cacheBackendNone {
		return engine, func() error { return nil }
	}

	store, err := newCacheStore(ctx, c.Config)
	if err != nil {
		c.Logger.Warn("artifact cache unavailable, rendering uncached", "err", err)
		return engine, func() error { return nil }
	}
	return render.NewCached(engine, store, nil, c.Config.Render.CacheTTL.Duration()), store.Close
}

// newCacheStore creates the artifact cache backend named by the config.
func newCacheStore(ctx context.Context, cfg *Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case cacheBackendMemory:
		return cache.NewMemoryCache(), nil

	case cacheBackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})

	case cacheBackendFile:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		store, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		if cfg.Cache.Compression {
			return cache.NewCompressed(store)
		}
		return store, nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Cache.Backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/listviz/).
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

// defaultConfigPath returns the config file location using XDG standard
// (~/.config/listviz/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// =============================================================================
// Shared helpers
// =============================================================================

// openOutput opens path for writing, or returns stdout for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
