// Package batch renders many bugs from one template in parallel.
//
// Every item gets its own [bug.Generator] seeded with base+index, so item i
// of a batch is the same picture no matter how many workers ran or in which
// order they finished. Items are written as bug_<i>.<format> and can be
// bundled into a zip archive named after the run id.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bugmaker/pkg/bug"
	errs "github.com/matzehuels/bugmaker/pkg/errors"
	"github.com/matzehuels/bugmaker/pkg/observability"
	"github.com/matzehuels/bugmaker/pkg/render"
)

// errNotRun marks items skipped because the run stopped early.
var errNotRun = errors.New("not run")

// Options configures a batch run.
type Options struct {
	Template   []byte // template document
	Source     string // template name for messages
	Count      int
	Workers    int // default GOMAXPROCS
	Seed       uint64
	Format     string // png, pdf or svg
	OutputDir  string
	Archive    bool
	FailFast   bool
	Rasterizer render.Rasterizer // shared by all workers, must be safe for concurrent use
	Logger     *log.Logger
	// Progress, if set, is called after each item with the number finished.
	Progress func(done, total int)
}

// Item is the outcome of one bug.
type Item struct {
	Index    int
	Seed     uint64
	Path     string
	Traits   bug.Traits
	Duration time.Duration
	Err      error
}

// Result summarizes a run.
type Result struct {
	ID       string
	Items    []Item
	Archive  string // path of the zip, if requested
	Failed   int
	Duration time.Duration
}

// Succeeded returns the items that were written.
func (r *Result) Succeeded() []Item {
	out := make([]Item, 0, len(r.Items)-r.Failed)
	for _, it := range r.Items {
		if it.Err == nil {
			out = append(out, it)
		}
	}
	return out
}

// FileName returns the output name of item i.
func FileName(i int, format string) string {
	return fmt.Sprintf("bug_%d%s", i, render.Extension(format))
}

func (o *Options) validate() error {
	if err := errs.ValidateCount(o.Count); err != nil {
		return err
	}
	if err := errs.ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Rasterizer == nil && o.Format != render.FormatSVG {
		o.Rasterizer = render.NewRSVG()
	}
	return nil
}

// Run renders opts.Count bugs. The template is checked once up front, so a
// schema violation fails the whole run before any file is written.
// Per-item failures abort the run only with FailFast; otherwise they are
// recorded in the result and the rest continue.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	probe, err := bug.NewFromBytes(opts.Template, bug.WithLogger(opts.Logger), bug.WithRasterizer(opts.Rasterizer))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", opts.Source, err)
	}
	probe.Close()

	res := &Result{ID: uuid.NewString(), Items: make([]Item, opts.Count)}
	start := time.Now()
	logger := opts.Logger.With("run", res.ID[:8])
	logger.Info("batch started", "count", opts.Count, "workers", opts.Workers, "seed", opts.Seed, "format", opts.Format)

	for i := range res.Items {
		res.Items[i] = Item{Index: i, Err: errNotRun}
	}

	var done, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i := range opts.Count {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			it := runOne(gctx, &opts, i)
			res.Items[i] = it
			if it.Err != nil {
				failed.Add(1)
				logger.Warn("bug failed", "index", i, "err", it.Err)
			}
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), opts.Count)
			}
			if it.Err != nil && opts.FailFast {
				return fmt.Errorf("bug %d: %w", i, it.Err)
			}
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	res.Failed = int(failed.Load())
	if err == nil && opts.Archive {
		var path string
		if path, err = writeArchive(opts.OutputDir, res); err == nil {
			res.Archive = path
		}
	}
	res.Duration = time.Since(start)

	// Reported for aborted runs too.
	observability.Batch().OnBatchComplete(ctx, opts.Count, res.Failed, res.Duration)
	if err != nil {
		logger.Warn("batch aborted", "failed", res.Failed, "duration", res.Duration.Round(time.Millisecond), "err", err)
		return res, err
	}
	logger.Info("batch finished", "ok", opts.Count-res.Failed, "failed", res.Failed, "duration", res.Duration.Round(time.Millisecond))
	return res, nil
}

func runOne(ctx context.Context, opts *Options, i int) Item {
	seed := opts.Seed + uint64(i)
	it := Item{
		Index: i,
		Seed:  seed,
		Path:  filepath.Join(opts.OutputDir, FileName(i, opts.Format)),
	}
	hooks := observability.Batch()
	hooks.OnBugStart(ctx, i)
	start := time.Now()

	it.Err = func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		g, err := bug.NewFromBytes(opts.Template,
			bug.WithSeed(seed),
			bug.WithLogger(opts.Logger),
			bug.WithRasterizer(opts.Rasterizer))
		if err != nil {
			return err
		}
		defer g.Close()

		g.Regenerate()
		it.Traits, _ = g.Traits()
		return g.Export(ctx, it.Path, opts.Format)
	}()
	it.Duration = time.Since(start)

	if it.Err != nil {
		hooks.OnBugComplete(ctx, i, "", 0, it.Duration, it.Err)
	} else {
		hooks.OnBugComplete(ctx, i, it.Traits.Rarity, it.Traits.Score.Total(), it.Duration, nil)
	}
	return it
}
