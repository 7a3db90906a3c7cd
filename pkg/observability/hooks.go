// Package observability lets a host program watch bug generation without
// the libraries depending on any metrics backend.
//
// Libraries emit events through the registered hooks:
//
//	start := time.Now()
//	observability.Render().OnRasterize(ctx, "rsvg", "png", len(out), time.Since(start), err)
//
// Programs register implementations once at startup:
//
//	rec := metrics.NewPrometheusRecorder()
//	observability.SetBatchHooks(rec)
//	observability.SetRenderHooks(rec)
//	observability.SetCacheHooks(rec)
//
// Until something is registered every hook is a no-op.
package observability

import (
	"context"
	"sync"
	"time"
)

// BatchHooks receives per-bug events from batch runs.
type BatchHooks interface {
	OnBugStart(ctx context.Context, index int)
	// OnBugComplete reports one finished bug. rarity and score are empty
	// when err is non-nil.
	OnBugComplete(ctx context.Context, index int, rarity string, score int, duration time.Duration, err error)
	OnBatchComplete(ctx context.Context, total, failed int, duration time.Duration)
}

// CacheHooks receives artifact cache events.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// RenderHooks receives rasterizer events.
type RenderHooks interface {
	OnRasterize(ctx context.Context, backend, format string, size int, duration time.Duration, err error)
}

// NoopBatchHooks ignores every event.
type NoopBatchHooks struct{}

func (NoopBatchHooks) OnBugStart(context.Context, int)                                         {}
func (NoopBatchHooks) OnBugComplete(context.Context, int, string, int, time.Duration, error) {}
func (NoopBatchHooks) OnBatchComplete(context.Context, int, int, time.Duration)               {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopRenderHooks ignores every event.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRasterize(context.Context, string, string, int, time.Duration, error) {}

var (
	batchHooks  BatchHooks  = NoopBatchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetBatchHooks registers batch hooks. A nil h is ignored.
func SetBatchHooks(h BatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		batchHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetRenderHooks registers render hooks. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Batch returns the registered batch hooks.
func Batch() BatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return batchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores the no-op defaults. Tests use it to undo registrations.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	batchHooks = NoopBatchHooks{}
	cacheHooks = NoopCacheHooks{}
	renderHooks = NoopRenderHooks{}
}
