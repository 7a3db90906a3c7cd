package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
)

const defaultRSVGBinary = "rsvg-convert"

// RSVG rasterizes with rsvg-convert. It is safe for concurrent use; each
// call runs its own process.
type RSVG struct {
	binary  string
	scale   float64
	timeout time.Duration
}

// RSVGOption configures an [RSVG].
type RSVGOption func(*RSVG)

// WithBinary overrides the rsvg-convert executable.
func WithBinary(path string) RSVGOption { return func(r *RSVG) { r.binary = path } }

// WithScale sets the zoom factor (default 1).
func WithScale(s float64) RSVGOption { return func(r *RSVG) { r.scale = s } }

// WithTimeout bounds each conversion.
func WithTimeout(d time.Duration) RSVGOption { return func(r *RSVG) { r.timeout = d } }

// NewRSVG creates an rsvg-convert backend.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func NewRSVG(opts ...RSVGOption) *RSVG {
	r := &RSVG{binary: defaultRSVGBinary, scale: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RSVG) Name() string { return BackendRSVG }

func (r *RSVG) Scale() float64 { return r.scale }

// Args returns the command line arguments used for format.
func (r *RSVG) Args(format string) []string {
	return []string{"-f", format, "-z", strconv.FormatFloat(r.scale, 'f', 2, 64)}
}

// Rasterize pipes svg through rsvg-convert.
func (r *RSVG) Rasterize(ctx context.Context, svg []byte, format string) (out []byte, err error) {
	start := time.Now()
	defer func() { observe(ctx, r.Name(), format, start, out, err) }()

	if err := checkFormat(format); err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(r.binary); err != nil {
		return nil, errs.Wrap(errs.ErrCodeRasterize, err,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.binary, r.Args(format)...)
	cmd.Stdin = bytes.NewReader(svg)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errs.Wrap(errs.ErrCodeTimeout, ctx.Err(), "rsvg-convert timed out")
		}
		return nil, errs.Wrap(errs.ErrCodeRasterize, fmt.Errorf("%v: %s", err, stderr.String()), "rsvg-convert")
	}
	return stdout.Bytes(), nil
}
