package render

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bugmaker/pkg/cache"
	"github.com/matzehuels/bugmaker/pkg/observability"
)

const artifactKeyType = "artifact"

// Cached serves repeated renders of identical documents from a cache.
type Cached struct {
	inner  Rasterizer
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewCached wraps inner. A nil logger discards cache diagnostics.
func NewCached(inner Rasterizer, c cache.Cache, ttl time.Duration, logger *log.Logger) *Cached {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cached{inner: inner, cache: c, ttl: ttl, logger: logger}
}

func (r *Cached) Name() string { return r.inner.Name() }

// Scale returns the wrapped backend's scale, or 1.
func (r *Cached) Scale() float64 {
	if s, ok := r.inner.(Scaler); ok {
		return s.Scale()
	}
	return 1
}

// Rasterize returns the cached artifact for svg, rendering and storing it
// on a miss. Cache failures are logged and never fail the render.
func (r *Cached) Rasterize(ctx context.Context, svg []byte, format string) ([]byte, error) {
	key := cache.ArtifactKey(svg, cache.ArtifactOpts{
		Backend: r.inner.Name(),
		Format:  format,
		Scale:   r.Scale(),
	})

	data, hit, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("artifact cache read failed", "err", err)
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, artifactKeyType)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, artifactKeyType)

	data, err = r.inner.Rasterize(ctx, svg, format)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("artifact cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, artifactKeyType, len(data))
	}
	return data, nil
}

// Close closes the wrapped backend and the cache.
func (r *Cached) Close() error {
	err := Close(r.inner)
	if cerr := r.cache.Close(); err == nil {
		err = cerr
	}
	return err
}
