package backend

import (
	"context"

	"github.com/funvibe/tackc/internal/cache"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/diagnostics"
)

// Result is the outcome of one compilation.
type Result struct {
	Output string
	Errors []*diagnostics.DiagnosticError

	// BuildID is set when the output is stored in, or came from, the cache.
	BuildID string
	Cached  bool
}

func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Build compiles source, consulting c first when it is not nil. Only
// successful compilations are stored.
func Build(ctx context.Context, c *cache.Cache, source, path string, opts *config.Options) (*Result, error) {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	var key string
	if c != nil {
		key = cache.Key(source, opts)
		b, ok, err := c.Lookup(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			return &Result{Output: b.Output, BuildID: b.ID, Cached: true}, nil
		}
	}

	pctx, err := Compile(source, path, opts)
	if err != nil {
		return nil, err
	}
	res := &Result{Output: pctx.Output, Errors: pctx.Errors()}
	if !res.OK() || c == nil {
		return res, nil
	}

	b, err := c.Store(ctx, key, opts.Emit, res.Output)
	if err != nil {
		return nil, err
	}
	res.BuildID = b.ID
	return res, nil
}
