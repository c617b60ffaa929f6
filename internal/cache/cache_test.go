package cache

import (
	"path/filepath"
	"testing"

	"github.com/minilang/minilang/internal/bytecode"
	"github.com/minilang/minilang/internal/compiler"
)

func TestStoreAndLookupRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()

	chunk := bytecode.NewChunk()
	chunk.AddConstNumber(42)
	chunk.Write(bytecode.HALT, 0, 0, 0)

	digest := Digest(`print(42);`)
	prog := &Program{Chunk: chunk, UserFuncs: map[string]*compiler.Func{}}

	if err := c.Store(digest, prog); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, ok, err := c.Lookup(digest)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got.Chunk.Code) != 1 || got.Chunk.ConstNum[0] != 42 {
		t.Fatalf("got %+v", got.Chunk)
	}
}

func TestLookupMissReturnsFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()

	_, ok, err := c.Lookup(Digest("nonexistent"))
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}
