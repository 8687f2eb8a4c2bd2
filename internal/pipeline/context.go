package pipeline

import (
	"github.com/funvibe/tackc/internal/ast"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/diagnostics"
	"github.com/funvibe/tackc/internal/ir"
	"github.com/funvibe/tackc/internal/symbols"
	"github.com/funvibe/tackc/internal/token"
	"github.com/funvibe/tackc/internal/typesystem"
)

// TokenStream is what the parser consumes.
type TokenStream interface {
	NextToken() token.Token
	Peek(n int) token.Token
}

// PipelineContext carries every stage's output to the next stage.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	Options    *config.Options

	TokenStream TokenStream
	AstRoot     *ast.Program

	Diagnostics *diagnostics.Collector

	// Filled by the scope resolver.
	Universe      *symbols.Scope
	ScopeMap      map[ast.Node]*symbols.Scope
	ResolutionMap map[ast.Node]*symbols.Symbol

	// Filled by the type checker.
	TypeMap map[ast.Node]typesystem.Type

	// Filled by the IR generator.
	Program *ir.Program

	// Filled by the output backend.
	Output string
}

func NewContext(source, path string, opts *config.Options) *PipelineContext {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	return &PipelineContext{
		SourceCode:  source,
		FilePath:    path,
		Options:     opts,
		Diagnostics: diagnostics.NewCollector(opts.MaxErrors),
	}
}

// Errors returns the diagnostics reported so far.
func (ctx *PipelineContext) Errors() []*diagnostics.DiagnosticError {
	return ctx.Diagnostics.Errors
}

func (ctx *PipelineContext) HasErrors() bool {
	return ctx.Diagnostics.Count() > 0
}
