package irgen

import (
	"github.com/funvibe/tackc/internal/pipeline"
)

// IRGeneratorProcessor lowers the program once analysis has found no
// errors at all.
type IRGeneratorProcessor struct{}

func (igp *IRGeneratorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.TypeMap == nil || ctx.HasErrors() {
		return ctx
	}

	gen := New(ctx.Universe, ctx.ScopeMap, ctx.ResolutionMap, ctx.TypeMap)
	ctx.Program = gen.Generate(ctx.AstRoot)
	return ctx
}
