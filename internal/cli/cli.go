// Package cli implements the bugmaker command-line interface.
//
// The commands are:
//   - generate: draw one bug and export it
//   - batch: draw many bugs in parallel into a directory or zip archive
//   - roll: re-roll a bug interactively and save the keepers
//   - template: print or check a bug template
//   - cache: manage the rendered artifact cache
//
// Every command reads an optional TOML file given with --config; flags that
// are set explicitly win over the file.
package cli

import (
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bugmaker/internal/assets"
	"github.com/matzehuels/bugmaker/pkg/buildinfo"
	"github.com/matzehuels/bugmaker/pkg/cache"
	"github.com/matzehuels/bugmaker/pkg/config"
	errs "github.com/matzehuels/bugmaker/pkg/errors"
	"github.com/matzehuels/bugmaker/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// builtinTemplate is how the embedded template is named in messages.
	builtinTemplate = "built-in"
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
		Short:        "Bugmaker draws randomized cartoon bugs",
		Long:         `Bugmaker re-rolls the pose, colors, name and rarity of a layered SVG bug template and exports the result as SVG, PNG or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.rollCommand())
	root.AddCommand(c.templateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads --config, or the defaults when it is not set.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("config loaded", "path", c.configPath)
	return cfg, nil
}

// renderFlags are shared by every command that draws bugs. A flag only
// overrides the config file when it was given on the command line.
type renderFlags struct {
	template string
	seed     uint64
	format   string
	backend  string
	binary   string
	scale    float64
	noCache  bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "SVG template (default: built-in)")
	cmd.Flags().Uint64VarP(&f.seed, "seed", "s", 0, "random seed (default: random)")
	cmd.Flags().StringVarP(&f.format, "format", "f", d.Render.Format, "output format: png, pdf, svg")
	cmd.Flags().StringVar(&f.backend, "backend", d.Render.Backend, "rasterizer: rsvg, inkscape")
	cmd.Flags().StringVar(&f.binary, "binary", "", "rasterizer executable")
	cmd.Flags().Float64Var(&f.scale, "scale", d.Render.Scale, "raster scale factor")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
}

func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("template") {
		cfg.Template = f.template
	}
	if flags.Changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}
	if flags.Changed("format") {
		cfg.Render.Format = strings.ToLower(f.format)
	}
	if flags.Changed("backend") {
		cfg.Render.Backend = f.backend
	}
	if flags.Changed("binary") {
		cfg.Render.Binary = f.binary
	}
	if flags.Changed("scale") {
		cfg.Render.Scale = f.scale
	}
	if flags.Changed("no-cache") {
		cfg.Render.Cache = !f.noCache
	}
}

// settings loads the config file and applies the command's flags on top.
func (c *CLI) settings(cmd *cobra.Command, f *renderFlags) (config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return cfg, err
	}
	f.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// seed returns the configured seed or draws and logs a fresh one so the run
// can be repeated.
func (c *CLI) seed(cfg config.Config) uint64 {
	if cfg.Seed != nil {
		return *cfg.Seed
	}
	s := rand.Uint64()
	c.Logger.Info("using random seed", "seed", s)
	return s
}

// =============================================================================
// Templates & Rasterizers
// =============================================================================

// loadTemplate returns the template bytes and a display name.
func loadTemplate(path string) ([]byte, string, error) {
	if path == "" {
		return assets.Template, builtinTemplate, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, path, errs.New(errs.ErrCodeFileNotFound, "template not found: %s", path)
	}
	if err != nil {
		return nil, path, errs.Wrap(errs.ErrCodeInternal, err, "read template %s", path)
	}
	return data, path, nil
}

// newRasterizer builds the configured backend, wrapped in the artifact cache
// when enabled. SVG output needs no rasterizer and returns nil.
func (c *CLI) newRasterizer(cfg config.Config) (render.Rasterizer, error) {
	if strings.EqualFold(cfg.Render.Format, render.FormatSVG) {
		return nil, nil
	}
	r, err := render.New(render.Options{
		Backend: cfg.Render.Backend,
		Binary:  cfg.Render.Binary,
		Scale:   cfg.Render.Scale,
		Timeout: cfg.Render.Timeout,
	})
	if err != nil {
		return nil, err
	}
	if !cfg.Render.Cache {
		return r, nil
	}
	fc, err := newCache(cfg)
	if err != nil {
		c.Logger.Warn("artifact cache disabled", "err", err)
		return r, nil
	}
	return render.NewCached(r, fc, cfg.Render.CacheTTL, c.Logger), nil
}

func newCache(cfg config.Config) (*cache.FileCache, error) {
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// closeRasterizer releases r, logging instead of failing the command.
func (c *CLI) closeRasterizer(r render.Rasterizer) {
	if r == nil {
		return
	}
	if err := render.Close(r); err != nil {
		c.Logger.Warn("close rasterizer", "err", err)
	}
}
