// Package config loads bugmaker settings from an optional TOML file.
//
// A file only needs the keys it changes; everything else keeps the value
// from [Default]:
//
//	template = "art/beetle.svg"
//	seed = 1234
//
//	[render]
//	backend = "inkscape"
//	scale = 2
//	timeout = "45s"
//
//	[batch]
//	count = 50
//	workers = 4
//	archive = true
//
// The same settings can be written as YAML; files ending in .yaml or .yml
// are read with gopkg.in/yaml.v3 instead:
//
//	render:
//	  backend: inkscape
//	  timeout: 45s
//
// Command line flags override the file.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
)

// AppName names the cache directory.
const AppName = "bugmaker"

// Config is the full configuration.
type Config struct {
	// Template is the SVG template path. Empty selects the built-in template.
	Template string `toml:"template" yaml:"template"`
	// Seed fixes the random source. Nil draws a fresh seed per run.
	Seed   *uint64 `toml:"seed" yaml:"seed"`
	Render Render  `toml:"render" yaml:"render"`
	Batch  Batch   `toml:"batch" yaml:"batch"`
}

// Render configures rasterization.
type Render struct {
	Backend  string        `toml:"backend" yaml:"backend"` // rsvg or inkscape
	Format   string        `toml:"format" yaml:"format"`   // png, pdf or svg
	Scale    float64       `toml:"scale" yaml:"scale"`
	Binary   string        `toml:"binary" yaml:"binary"`
	Cache    bool          `toml:"cache" yaml:"cache"`
	CacheDir string        `toml:"cache_dir" yaml:"cache_dir"`
	CacheTTL time.Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	Timeout  time.Duration `toml:"timeout" yaml:"timeout"`
}

// Batch configures multi-bug runs.
type Batch struct {
	Count       int    `toml:"count" yaml:"count"`
	Workers     int    `toml:"workers" yaml:"workers"` // 0 uses every CPU
	Output      string `toml:"output" yaml:"output"`
	Archive     bool   `toml:"archive" yaml:"archive"`
	FailFast    bool   `toml:"fail_fast" yaml:"fail_fast"`
	MetricsFile string `toml:"metrics_file" yaml:"metrics_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: Render{
			Backend:  "rsvg",
			Format:   "png",
			Scale:    1,
			Cache:    true,
			CacheTTL: 30 * 24 * time.Hour,
			Timeout:  30 * time.Second,
		},
		Batch: Batch{
			Count:  10,
			Output: ".",
		},
	}
}

// Load reads path over the defaults and validates the result. The format
// follows the extension: .yaml and .yml are YAML, anything else is TOML.
func Load(path string) (Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(path, &cfg)
	default:
		err = decodeTOML(path, &cfg)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, errs.New(errs.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	switch c.Render.Backend {
	case "rsvg", "inkscape":
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "render.backend must be rsvg or inkscape, got %q", c.Render.Backend)
	}
	if err := errs.ValidateFormat(c.Render.Format); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "render.format")
	}
	if err := errs.ValidateScale(c.Render.Scale); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "render.scale")
	}
	if c.Render.Timeout < 0 || c.Render.CacheTTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "render durations must not be negative")
	}
	if err := errs.ValidateCount(c.Batch.Count); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "batch.count")
	}
	if c.Batch.Workers < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "batch.workers must not be negative, got %d", c.Batch.Workers)
	}
	return nil
}

// CacheDir returns the artifact cache directory: render.cache_dir when set,
// else $XDG_CACHE_HOME/bugmaker, else ~/.cache/bugmaker.
func (c Config) CacheDir() (string, error) {
	if c.Render.CacheDir != "" {
		return c.Render.CacheDir, nil
	}
	return DefaultCacheDir()
}

// DefaultCacheDir follows the XDG base directory convention.
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
