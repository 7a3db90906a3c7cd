package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	inkscape "github.com/galihrivanto/go-inkscape"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
)

// inkscapeDPI is inkscape's default export resolution; scale multiplies it.
const inkscapeDPI = 96

// shell is the part of the inkscape proxy the backend drives.
type shell interface {
	RawCommandsContext(ctx context.Context, args ...string) ([]byte, error)
	Close() error
}

// Inkscape rasterizes through one inkscape --shell session. Calls are
// serialized because the session executes one action list at a time.
type Inkscape struct {
	mu      sync.Mutex
	shell   shell
	scale   float64
	timeout time.Duration
	tmpDir  string
}

// NewInkscape starts an inkscape shell session. A positive timeout bounds
// each export.
func NewInkscape(scale float64, timeout time.Duration) (*Inkscape, error) {
	proxy := inkscape.NewProxy(inkscape.Verbose(false))
	if err := proxy.Run(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeRasterize, err, "start inkscape")
	}
	ink, err := newInkscape(proxy, scale)
	if err != nil {
		proxy.Close()
		return nil, err
	}
	ink.timeout = timeout
	return ink, nil
}

func newInkscape(sh shell, scale float64) (*Inkscape, error) {
	dir, err := os.MkdirTemp("", "bugmaker-inkscape-")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "create inkscape work dir")
	}
	if scale <= 0 {
		scale = 1
	}
	return &Inkscape{shell: sh, scale: scale, tmpDir: dir}, nil
}

func (r *Inkscape) Name() string { return BackendInkscape }

func (r *Inkscape) Scale() float64 { return r.scale }

// Actions returns the shell action list that exports in to out.
func (r *Inkscape) Actions(in, out, format string) []string {
	actions := []string{
		inkscape.FileOpen(in),
		inkscape.ExportFileName(out),
		"export-type:" + format,
	}
	if format == FormatPNG {
		actions = append(actions, "export-dpi:"+strconv.FormatFloat(inkscapeDPI*r.scale, 'f', -1, 64))
	}
	return append(actions, inkscape.ExportDo(), inkscape.FileClose())
}

// Rasterize writes svg to the work dir, exports it and reads the result back.
func (r *Inkscape) Rasterize(ctx context.Context, svg []byte, format string) (out []byte, err error) {
	start := time.Now()
	defer func() { observe(ctx, r.Name(), format, start, out, err) }()

	if err := checkFormat(format); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shell == nil {
		panic("render: use of closed inkscape session")
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in, err := os.CreateTemp(r.tmpDir, "bug-*.svg")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "create inkscape input")
	}
	defer os.Remove(in.Name())
	if _, err := in.Write(svg); err != nil {
		in.Close()
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "write inkscape input")
	}
	if err := in.Close(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "write inkscape input")
	}

	outPath := filepath.Join(r.tmpDir, fmt.Sprintf("%s%s", filepath.Base(in.Name()), Extension(format)))
	defer os.Remove(outPath)

	if msg, err := r.shell.RawCommandsContext(ctx, r.Actions(in.Name(), outPath, format)...); err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, errs.Wrap(errs.ErrCodeTimeout, ctx.Err(), "inkscape timed out")
		case ctx.Err() != nil:
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.ErrCodeRasterize, err, "inkscape: %s", msg)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRasterize, err, "inkscape produced no output")
	}
	return data, nil
}

// Close ends the shell session and removes the work dir.
func (r *Inkscape) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shell == nil {
		return nil
	}
	err := r.shell.Close()
	r.shell = nil
	os.RemoveAll(r.tmpDir)
	return err
}
