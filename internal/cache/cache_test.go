package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/funvibe/tackc/internal/config"
	"github.com/google/uuid"
	"github.com/nalgeon/be"
)

func openTemp(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	be.Err(t, err, nil)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestKeyDependsOnOptions(t *testing.T) {
	asm := config.DefaultOptions()
	ir := config.DefaultOptions()
	ir.Emit = config.EmitIR
	wide := config.DefaultOptions()
	wide.FrameAlignment = 32

	src := `main = fun () -> int { -> 0; }`
	be.Equal(t, Key(src, asm), Key(src, config.DefaultOptions()))
	be.True(t, Key(src, asm) != Key(src, ir))
	be.True(t, Key(src, asm) != Key(src, wide))
	be.True(t, Key(src, asm) != Key(src+" ", asm))
	be.Equal(t, len(Key(src, asm)), 64)
}

func TestLookupMiss(t *testing.T) {
	c := openTemp(t)
	b, ok, err := c.Lookup(context.Background(), "missing")
	be.Err(t, err, nil)
	be.Equal(t, ok, false)
	be.True(t, b == nil)
}

func TestStoreThenLookup(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	stored, err := c.Store(ctx, "k", config.EmitAsm, ".intel_syntax\n")
	be.Err(t, err, nil)
	_, err = uuid.Parse(stored.ID)
	be.Err(t, err, nil)

	got, ok, err := c.Lookup(ctx, "k")
	be.Err(t, err, nil)
	be.True(t, ok)
	be.Equal(t, got.ID, stored.ID)
	be.Equal(t, got.Emit, config.EmitAsm)
	be.Equal(t, got.Output, ".intel_syntax\n")
	be.Equal(t, got.CreatedAt.Unix(), stored.CreatedAt.Unix())
}

func TestStoreReplaces(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	first, err := c.Store(ctx, "k", config.EmitIR, "old")
	be.Err(t, err, nil)
	second, err := c.Store(ctx, "k", config.EmitIR, "new")
	be.Err(t, err, nil)
	be.True(t, first.ID != second.ID)

	got, _, err := c.Lookup(ctx, "k")
	be.Err(t, err, nil)
	be.Equal(t, got.Output, "new")
	be.Equal(t, got.ID, second.ID)

	n, err := c.Len(ctx)
	be.Err(t, err, nil)
	be.Equal(t, n, 1)
}

func TestReopenKeepsBuilds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	be.Err(t, err, nil)
	_, err = c.Store(context.Background(), "k", config.EmitAsm, "out")
	be.Err(t, err, nil)
	be.Err(t, c.Close(), nil)

	c, err = Open(path)
	be.Err(t, err, nil)
	defer c.Close()
	_, ok, err := c.Lookup(context.Background(), "k")
	be.Err(t, err, nil)
	be.True(t, ok)
}
