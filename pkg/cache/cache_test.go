package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	dotHash := Hash([]byte("digraph {}\n"))

	// Same inputs produce the same key
	k1 := k.ArtifactKey(dotHash, ArtifactKeyOpts{Format: "svg"})
	k2 := k.ArtifactKey(dotHash, ArtifactKeyOpts{Format: "svg"})
	if k1 != k2 {
		t.Error("ArtifactKey should be deterministic")
	}
	if !strings.HasPrefix(k1, "artifact:") {
		t.Errorf("ArtifactKey should carry the artifact prefix, got %s", k1)
	}

	// Format is part of the key
	k3 := k.ArtifactKey(dotHash, ArtifactKeyOpts{Format: "png"})
	if k1 == k3 {
		t.Error("Different formats should produce different keys")
	}

	// The DOT hash is part of the key
	k4 := k.ArtifactKey(Hash([]byte("digraph { a }\n")), ArtifactKeyOpts{Format: "svg"})
	if k1 == k4 {
		t.Error("Different DOT hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "tenant:abc:")

	opts := ArtifactKeyOpts{Format: "svg"}
	want := "tenant:abc:" + base.ArtifactKey("hash123", opts)
	if got := scoped.ArtifactKey("hash123", opts); got != want {
		t.Errorf("ArtifactKey = %s, want %s", got, want)
	}

	// Nil inner falls back to the default keyer
	fallback := NewScopedKeyer(nil, "x:")
	if got := fallback.ArtifactKey("hash123", opts); got != "x:"+base.ArtifactKey("hash123", opts) {
		t.Errorf("ArtifactKey with nil inner = %s", got)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	// Miss on empty cache
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	// Roundtrip
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want value", data)
	}

	// Stored data is a copy, mutating the original does not leak in
	orig := []byte("abc")
	_ = c.Set(ctx, "copy", orig, 0)
	orig[0] = 'x'
	data, _, _ = c.Get(ctx, "copy")
	if string(data) != "abc" {
		t.Errorf("Get after mutation = %q, want abc", data)
	}

	// Delete
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after TTL should miss")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	// Roundtrip
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want value", data)
	}

	// Delete, including deleting twice
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("second Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer fc.Close()

	c := fc.(*FileCache)
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := os.WriteFile(c.path("key"), []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	// Corrupt entries are misses and get removed
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Fatalf("Get on corrupt entry = hit %v, err %v", hit, err)
	}
	if _, err := os.Stat(c.path("key")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestCompressed(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryCache()

	c, err := NewCompressed(inner)
	if err != nil {
		t.Fatalf("NewCompressed error: %v", err)
	}
	defer c.Close()

	payload := bytes.Repeat([]byte("<svg>repetitive markup</svg>"), 100)
	if err := c.Set(ctx, "key", payload, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Roundtrip restores the original bytes
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("Get should return the original payload")
	}

	// The backend holds the compressed form
	stored, _, _ := inner.Get(ctx, "key")
	if bytes.Equal(stored, payload) {
		t.Error("backend should hold compressed data")
	}
	if len(stored) >= len(payload) {
		t.Errorf("compressed size %d should beat %d for repetitive input", len(stored), len(payload))
	}
}

func TestCompressedCorruptEntry(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryCache()

	c, err := NewCompressed(inner)
	if err != nil {
		t.Fatalf("NewCompressed error: %v", err)
	}
	defer c.Close()

	// Plant bytes that are not a zstd frame
	if err := inner.Set(ctx, "key", []byte("garbage"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Fatalf("Get on corrupt entry = hit %v, err %v", hit, err)
	}
	if _, hit, _ := inner.Get(ctx, "key"); hit {
		t.Error("corrupt entry should be removed from the backend")
	}
}
