package analyzer

import (
	"github.com/funvibe/tackc/internal/pipeline"
	"github.com/funvibe/tackc/internal/symbols"
)

// ScopeResolverProcessor builds the scope tree. It needs a syntax tree, so
// it does nothing after a syntax error.
type ScopeResolverProcessor struct{}

func (srp *ScopeResolverProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Diagnostics.HasSyntaxErrors() {
		return ctx
	}

	global := symbols.NewGlobalScope()
	resolver := NewResolver(global, ctx.Diagnostics)
	resolver.Resolve(ctx.AstRoot)

	ctx.Universe = global
	ctx.ScopeMap = resolver.ScopeMap
	ctx.ResolutionMap = resolver.ResolutionMap
	return ctx
}

// SemanticAnalyzerProcessor registers the intrinsics and type checks the
// program. Scope errors do not stop it.
type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Universe == nil {
		return ctx
	}

	RegisterBuiltins(ctx.Universe, ctx.Diagnostics)

	checker := NewChecker(ctx.Universe, ctx.ScopeMap, ctx.ResolutionMap, ctx.Diagnostics)
	checker.Check(ctx.AstRoot)

	ctx.TypeMap = checker.TypeMap // Export inferred types to context
	return ctx
}
