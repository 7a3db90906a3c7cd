package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	return writeFile(t, "bugmaker.toml", body)
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
template = "beetle.svg"
seed = 1234

[render]
backend = "inkscape"
scale = 2.5
timeout = "45s"

[batch]
count = 50
workers = 4
archive = true
fail_fast = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Template != "beetle.svg" {
		t.Errorf("Template = %q", cfg.Template)
	}
	if cfg.Seed == nil || *cfg.Seed != 1234 {
		t.Errorf("Seed = %v, want 1234", cfg.Seed)
	}
	if cfg.Render.Backend != "inkscape" || cfg.Render.Scale != 2.5 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Render.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Render.Timeout)
	}
	if cfg.Render.Format != "png" || !cfg.Render.Cache {
		t.Errorf("unset render keys lost their defaults: %+v", cfg.Render)
	}
	if cfg.Batch.Count != 50 || cfg.Batch.Workers != 4 || !cfg.Batch.Archive || !cfg.Batch.FailFast {
		t.Errorf("Batch = %+v", cfg.Batch)
	}
	if cfg.Batch.Output != "." {
		t.Errorf("Output = %q, want default", cfg.Batch.Output)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errs.Code
	}{
		{"syntax", "[render\nscale = 1", errs.ErrCodeInvalidConfig},
		{"unknown key", "colour = \"red\"", errs.ErrCodeInvalidConfig},
		{"unknown nested key", "[render]\ndpi = 300", errs.ErrCodeInvalidConfig},
		{"bad backend", "[render]\nbackend = \"cairo\"", errs.ErrCodeInvalidConfig},
		{"bad format", "[render]\nformat = \"gif\"", errs.ErrCodeInvalidConfig},
		{"bad scale", "[render]\nscale = 0.0", errs.ErrCodeInvalidConfig},
		{"bad count", "[batch]\ncount = 0", errs.ErrCodeInvalidConfig},
		{"negative workers", "[batch]\nworkers = -1", errs.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "bugmaker.yaml", `
template: beetle.svg
seed: 77
render:
  format: pdf
  timeout: 45s
  cache: false
batch:
  count: 12
  fail_fast: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Template != "beetle.svg" {
		t.Errorf("Template = %q", cfg.Template)
	}
	if cfg.Seed == nil || *cfg.Seed != 77 {
		t.Errorf("Seed = %v, want 77", cfg.Seed)
	}
	if cfg.Render.Format != "pdf" || cfg.Render.Cache {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Render.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Render.Timeout)
	}
	if cfg.Render.Backend != "rsvg" || cfg.Render.Scale != 1 {
		t.Errorf("unset render keys lost their defaults: %+v", cfg.Render)
	}
	if cfg.Batch.Count != 12 || !cfg.Batch.FailFast {
		t.Errorf("Batch = %+v", cfg.Batch)
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		code errs.Code
	}{
		{"unknown key", "c.yml", "colour: red\n", errs.ErrCodeInvalidConfig},
		{"unknown nested key", "c.yaml", "render:\n  dpi: 300\n", errs.ErrCodeInvalidConfig},
		{"syntax", "c.yaml", "render: [\n", errs.ErrCodeInvalidConfig},
		{"bad count", "c.yaml", "batch:\n  count: 0\n", errs.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.body))
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Batch.Count != Default().Batch.Count {
		t.Errorf("Count = %d, want default", cfg.Batch.Count)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errs.ErrCodeFileNotFound)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := DefaultCacheDir()
	if err != nil {
		t.Fatalf("DefaultCacheDir: %v", err)
	}
	if want := filepath.Join(home, ".cache", AppName); dir != want {
		t.Errorf("DefaultCacheDir() = %q, want %q", dir, want)
	}
}

func TestDefaultCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := DefaultCacheDir()
	if err != nil {
		t.Fatalf("DefaultCacheDir: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", AppName); dir != want {
		t.Errorf("DefaultCacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirOverride(t *testing.T) {
	cfg := Default()
	cfg.Render.CacheDir = "/var/cache/bugs"
	if dir, _ := cfg.CacheDir(); dir != "/var/cache/bugs" {
		t.Errorf("CacheDir() = %q", dir)
	}
}
