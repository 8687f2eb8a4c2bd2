package backend

import (
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/lexer"
	"github.com/funvibe/tackc/internal/parser"
	"github.com/funvibe/tackc/internal/pipeline"
	"github.com/funvibe/tackc/internal/prettyprinter"
)

// Format parses source and renders it back in canonical layout. Comments
// are not preserved. Only syntax is checked.
func Format(source, path string, opts *config.Options) *pipeline.PipelineContext {
	ctx := pipeline.NewContext(source, path, opts)
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if ctx.AstRoot != nil && !ctx.HasErrors() {
		ctx.Output = prettyprinter.Print(ctx.AstRoot)
	}
	return ctx
}
