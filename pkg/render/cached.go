package render

import (
	"context"
	"time"

	"github.com/listviz/listviz/pkg/cache"
	"github.com/listviz/listviz/pkg/observability"
)

// Cached wraps a [Renderer] with a [cache.Cache], keyed by the SHA-256
// of the DOT text plus the output format. Cache failures are treated as
// misses so a broken backend never blocks rendering.
type Cached struct {
	inner Renderer
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewCached builds a caching renderer around inner. A nil keyer falls
// back to [cache.NewDefaultKeyer]. A zero ttl stores entries forever.
func NewCached(inner Renderer, c cache.Cache, keyer cache.Keyer, ttl time.Duration) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cached{inner: inner, cache: c, keyer: keyer, ttl: ttl}
}

// Render returns the cached artifact when present and renders through
// the wrapped renderer otherwise, storing the result on success.
func (c *Cached) Render(ctx context.Context, dotText string, format Format) ([]byte, error) {
	key := c.keyer.ArtifactKey(cache.Hash([]byte(dotText)), cache.ArtifactKeyOpts{Format: string(format)})

	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	data, err := c.inner.Render(ctx, dotText, format)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, nil
}

var _ Renderer = (*Cached)(nil)
