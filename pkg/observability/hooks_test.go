package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	b := NoopBatchHooks{}
	b.OnBugStart(ctx, 0)
	b.OnBugComplete(ctx, 0, "Common", 3, time.Millisecond, nil)
	b.OnBatchComplete(ctx, 10, 1, time.Second)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	NoopRenderHooks{}.OnRasterize(ctx, "rsvg", "png", 2048, time.Second, errors.New("boom"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Batch().(NoopBatchHooks); !ok {
		t.Error("Batch() default is not NoopBatchHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() default is not NoopCacheHooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() default is not NoopRenderHooks")
	}

	rec := &recorder{}
	SetBatchHooks(rec)
	SetCacheHooks(rec)
	SetRenderHooks(rec)

	if Batch() != rec || Cache() != rec || Render() != rec {
		t.Fatal("custom hooks were not registered")
	}

	ctx := context.Background()
	Batch().OnBugComplete(ctx, 3, "Rare!", 9, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "artifact")
	Render().OnRasterize(ctx, "inkscape", "png", 10, time.Millisecond, nil)
	if rec.events != 3 {
		t.Errorf("events = %d, want 3", rec.events)
	}

	SetBatchHooks(nil)
	if Batch() != rec {
		t.Error("SetBatchHooks(nil) replaced registered hooks")
	}

	Reset()
	if _, ok := Batch().(NoopBatchHooks); !ok {
		t.Error("Reset did not restore batch hooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset did not restore render hooks")
	}
}

type recorder struct {
	events int
}

func (r *recorder) OnBugStart(context.Context, int) { r.events++ }
func (r *recorder) OnBugComplete(context.Context, int, string, int, time.Duration, error) {
	r.events++
}
func (r *recorder) OnBatchComplete(context.Context, int, int, time.Duration) { r.events++ }
func (r *recorder) OnCacheHit(context.Context, string)                        { r.events++ }
func (r *recorder) OnCacheMiss(context.Context, string)                       { r.events++ }
func (r *recorder) OnCacheSet(context.Context, string, int)                   { r.events++ }
func (r *recorder) OnRasterize(context.Context, string, string, int, time.Duration, error) {
	r.events++
}
