package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
	"github.com/matzehuels/bugmaker/pkg/observability"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatSVG = "svg"
)

// Rasterizer converts an SVG document to another format.
type Rasterizer interface {
	// Name identifies the backend in logs, metrics and cache keys.
	Name() string

	// Rasterize renders svg as format (png or pdf).
	Rasterize(ctx context.Context, svg []byte, format string) ([]byte, error)
}

// Scaler is implemented by rasterizers whose output depends on a scale factor.
type Scaler interface {
	Scale() float64
}

// Backend names accepted by [New].
const (
	BackendRSVG     = "rsvg"
	BackendInkscape = "inkscape"
)

// Options selects and configures a backend for [New].
type Options struct {
	Backend string
	Binary  string // executable path, empty for the default lookup
	Scale   float64
	Timeout time.Duration
}

// New creates the rasterizer named by opts.Backend. Inkscape backends start
// their shell session immediately and must be closed by the caller.
func New(opts Options) (Rasterizer, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendRSVG:
		var o []RSVGOption
		if opts.Binary != "" {
			o = append(o, WithBinary(opts.Binary))
		}
		if opts.Scale > 0 {
			o = append(o, WithScale(opts.Scale))
		}
		if opts.Timeout > 0 {
			o = append(o, WithTimeout(opts.Timeout))
		}
		return NewRSVG(o...), nil
	case BackendInkscape:
		return NewInkscape(opts.Scale, opts.Timeout)
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unknown render backend %q (use rsvg or inkscape)", opts.Backend)
	}
}

// Close releases r if it holds resources.
func Close(r Rasterizer) error {
	if c, ok := r.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	return "." + strings.ToLower(format)
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

func checkFormat(format string) error {
	switch format {
	case FormatPNG, FormatPDF:
		return nil
	default:
		return errs.New(errs.ErrCodeUnsupported, "cannot rasterize to %q", format)
	}
}

func observe(ctx context.Context, backend, format string, start time.Time, out []byte, err error) {
	observability.Render().OnRasterize(ctx, backend, format, len(out), time.Since(start), err)
}
