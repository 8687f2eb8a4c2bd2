package lexer

import (
	"github.com/funvibe/tackc/internal/pipeline"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = NewTokenStream(NewFile(ctx.FilePath, ctx.SourceCode))
	return ctx
}
