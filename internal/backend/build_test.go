package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/funvibe/tackc/internal/cache"
	"github.com/funvibe/tackc/internal/config"
	"github.com/nalgeon/be"
)

func TestBuildWithoutCache(t *testing.T) {
	res, err := Build(context.Background(), nil, program, "", nil)
	be.Err(t, err, nil)
	be.True(t, res.OK())
	be.Equal(t, res.BuildID, "")
	be.Equal(t, res.Cached, false)
}

func TestBuildUsesCache(t *testing.T) {
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	be.Err(t, err, nil)
	defer c.Close()
	ctx := context.Background()
	opts := config.DefaultOptions()

	first, err := Build(ctx, c, program, "", opts)
	be.Err(t, err, nil)
	be.True(t, first.BuildID != "")
	be.Equal(t, first.Cached, false)

	second, err := Build(ctx, c, program, "", opts)
	be.Err(t, err, nil)
	be.True(t, second.Cached)
	be.Equal(t, second.BuildID, first.BuildID)
	be.Equal(t, second.Output, first.Output)
}

func TestBuildDoesNotCacheErrors(t *testing.T) {
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	be.Err(t, err, nil)
	defer c.Close()
	ctx := context.Background()

	res, err := Build(ctx, c, `main = fun () -> int { -> true; }`, "", nil)
	be.Err(t, err, nil)
	be.Equal(t, res.OK(), false)
	be.Equal(t, res.BuildID, "")

	n, err := c.Len(ctx)
	be.Err(t, err, nil)
	be.Equal(t, n, 0)
}
