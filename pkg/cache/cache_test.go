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

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	if len(h) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(h))
	}
	if h != Hash([]byte("hello")) {
		t.Error("Hash() not deterministic")
	}
	if h == Hash([]byte("world")) {
		t.Error("Hash() collision for different inputs")
	}
}

func TestDefaultKeyerGraphKey(t *testing.T) {
	k := NewDefaultKeyer()

	key := k.GraphKey("abc123", GraphKeyOpts{Format: "toml"})
	if !strings.HasPrefix(key, "graph:") {
		t.Errorf("GraphKey() = %q, want graph: prefix", key)
	}

	same := k.GraphKey("abc123", GraphKeyOpts{Format: "toml"})
	if key != same {
		t.Error("GraphKey() not deterministic")
	}

	other := k.GraphKey("abc123", GraphKeyOpts{Format: "yaml"})
	if key == other {
		t.Error("GraphKey() ignores format option")
	}

	otherHash := k.GraphKey("def456", GraphKeyOpts{Format: "toml"})
	if key == otherHash {
		t.Error("GraphKey() ignores manifest hash")
	}
}

func TestScopedKeyer(t *testing.T) {
	k := NewScopedKeyer(NewDefaultKeyer(), "lexicon:arabic:")

	key := k.GraphKey("abc123", GraphKeyOpts{Format: "toml"})
	if !strings.HasPrefix(key, "lexicon:arabic:graph:") {
		t.Errorf("GraphKey() = %q, want scoped prefix", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	k := NewScopedKeyer(nil, "x:")

	key := k.GraphKey("abc123", GraphKeyOpts{})
	if !strings.HasPrefix(key, "x:graph:") {
		t.Errorf("GraphKey() = %q, want default inner keyer", key)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("data"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || data != nil {
		t.Error("NullCache stored a value")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	want := []byte(`{"name":"arabic"}`)
	if err := c.Set(ctx, "graph:abc", want, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, "graph:abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() miss after Set()")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestFileCacheMiss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(ctx, "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() hit for absent key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("data"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() hit for expired entry")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := os.WriteFile(c.path("key"), []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() hit for corrupt entry")
	}
	if _, err := os.Stat(c.path("key")); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Get() hit after Delete()")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestFileCacheClearAndStats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte("data-"+key), 0); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	entries, size, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if entries != 3 {
		t.Errorf("Stats() entries = %d, want 3", entries)
	}
	if size <= 0 {
		t.Errorf("Stats() bytes = %d, want > 0", size)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	entries, _, err = c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() after Clear() error = %v", err)
	}
	if entries != 0 {
		t.Errorf("Stats() entries after Clear() = %d, want 0", entries)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir removed by Clear(): %v", err)
	}
}

func TestFileCachePathSharding(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	p := c.path("graph:abc")
	rel, err := filepath.Rel(c.Dir(), p)
	if err != nil {
		t.Fatalf("Rel() error = %v", err)
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) != 2 || len(parts[0]) != 2 || !strings.HasSuffix(parts[1], ".json") {
		t.Errorf("path() = %q, want two-char shard dir and .json file", rel)
	}
}
