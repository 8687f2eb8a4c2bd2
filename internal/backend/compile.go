package backend

import (
	"github.com/funvibe/tackc/internal/analyzer"
	"github.com/funvibe/tackc/internal/config"
	"github.com/funvibe/tackc/internal/irgen"
	"github.com/funvibe/tackc/internal/lexer"
	"github.com/funvibe/tackc/internal/parser"
	"github.com/funvibe/tackc/internal/pipeline"
)

// Compile runs every stage on source and returns the final context. The
// output is in ctx.Output unless ctx.HasErrors().
func Compile(source, path string, opts *config.Options) (*pipeline.PipelineContext, error) {
	ctx := pipeline.NewContext(source, path, opts)
	b, err := ForMode(ctx.Options.Emit)
	if err != nil {
		return nil, err
	}

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.ScopeResolverProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		&irgen.IRGeneratorProcessor{},
		NewEmitProcessor(b),
	)
	return processingPipeline.Run(ctx), nil
}
