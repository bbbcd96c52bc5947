package cache

import (
	"context"
	"errors"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Compressed wraps another cache with zstd compression. SVG artifacts in
// particular compress to a fraction of their size, which matters for
// Redis memory and file cache disk usage.
type Compressed struct {
	inner   Cache
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCompressed wraps inner with transparent zstd compression.
func NewCompressed(inner Cache) (Cache, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = encoder.Close()
		return nil, err
	}
	return &Compressed{inner: inner, encoder: encoder, decoder: decoder}, nil
}

// Get retrieves and decompresses a value. An entry that fails to
// decompress is removed and treated as a miss.
func (c *Compressed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	out, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		_ = c.inner.Delete(ctx, key)
		return nil, false, nil
	}
	return out, true, nil
}

// Set compresses and stores a value.
func (c *Compressed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, key, c.encoder.EncodeAll(data, nil), ttl)
}

// Delete removes a value from the underlying cache.
func (c *Compressed) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close releases the codecs and closes the underlying cache.
func (c *Compressed) Close() error {
	c.decoder.Close()
	return errors.Join(c.encoder.Close(), c.inner.Close())
}

// Ensure Compressed implements Cache.
var _ Cache = (*Compressed)(nil)
