package render_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/listviz/listviz/pkg/cache"
	"github.com/listviz/listviz/pkg/render"
)

func countingRenderer(calls *atomic.Int64) render.Renderer {
	return render.RendererFunc(func(_ context.Context, _ string, format render.Format) ([]byte, error) {
		calls.Add(1)
		return []byte("artifact-" + string(format)), nil
	})
}

func TestCachedRendersOnce(t *testing.T) {
	var calls atomic.Int64
	r := render.NewCached(countingRenderer(&calls), cache.NewMemoryCache(), nil, time.Minute)
	ctx := context.Background()

	first, err := r.Render(ctx, "digraph {}", render.SVG)
	if err != nil {
		t.Fatalf("first Render: %v", err)
	}
	second, err := r.Render(ctx, "digraph {}", render.SVG)
	if err != nil {
		t.Fatalf("second Render: %v", err)
	}

	if string(first) != "artifact-svg" || string(second) != "artifact-svg" {
		t.Errorf("Render returned %q then %q, want %q both times", first, second, "artifact-svg")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("inner renderer called %d times, want 1", got)
	}
}

func TestCachedKeysByFormat(t *testing.T) {
	var calls atomic.Int64
	r := render.NewCached(countingRenderer(&calls), cache.NewMemoryCache(), nil, time.Minute)
	ctx := context.Background()

	if _, err := r.Render(ctx, "digraph {}", render.SVG); err != nil {
		t.Fatalf("svg Render: %v", err)
	}
	if _, err := r.Render(ctx, "digraph {}", render.PNG); err != nil {
		t.Fatalf("png Render: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("inner renderer called %d times, want 2", got)
	}
}

func TestCachedKeysByDOT(t *testing.T) {
	var calls atomic.Int64
	r := render.NewCached(countingRenderer(&calls), cache.NewMemoryCache(), nil, time.Minute)
	ctx := context.Background()

	if _, err := r.Render(ctx, "digraph {}", render.SVG); err != nil {
		t.Fatalf("first Render: %v", err)
	}
	if _, err := r.Render(ctx, "digraph { node_1; }", render.SVG); err != nil {
		t.Fatalf("second Render: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("inner renderer called %d times, want 2", got)
	}
}

func TestCachedScopedKeyer(t *testing.T) {
	var calls atomic.Int64
	backend := cache.NewMemoryCache()
	ctx := context.Background()

	a := render.NewCached(countingRenderer(&calls), backend, cache.NewScopedKeyer(nil, "a"), time.Minute)
	b := render.NewCached(countingRenderer(&calls), backend, cache.NewScopedKeyer(nil, "b"), time.Minute)

	if _, err := a.Render(ctx, "digraph {}", render.SVG); err != nil {
		t.Fatalf("scope a Render: %v", err)
	}
	if _, err := b.Render(ctx, "digraph {}", render.SVG); err != nil {
		t.Fatalf("scope b Render: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("inner renderer called %d times, want 2: scopes must not share entries", got)
	}
}

func TestCachedNullCachePassesThrough(t *testing.T) {
	var calls atomic.Int64
	r := render.NewCached(countingRenderer(&calls), cache.NewNullCache(), nil, time.Minute)
	ctx := context.Background()

	for range 3 {
		if _, err := r.Render(ctx, "digraph {}", render.SVG); err != nil {
			t.Fatalf("Render: %v", err)
		}
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("inner renderer called %d times, want 3", got)
	}
}
