package parser

import (
	"github.com/funvibe/tackc/internal/diagnostics"
	"github.com/funvibe/tackc/internal/pipeline"
	"github.com/funvibe/tackc/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// This case should ideally not be hit if lexer runs first, but as a safeguard:
		err := diagnostics.NewError(diagnostics.ErrP001, token.Token{File: ctx.FilePath}, "parser: token stream is nil")
		ctx.Diagnostics.Report(err)
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	ctx.AstRoot = parser.ParseProgram()
	return ctx
}
