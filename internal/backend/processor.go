package backend

import (
	"github.com/funvibe/tackc/internal/diagnostics"
	"github.com/funvibe/tackc/internal/pipeline"
	"github.com/funvibe/tackc/internal/token"
)

// EmitProcessor implements pipeline.Processor to run a Backend
type EmitProcessor struct {
	Backend Backend
}

// NewEmitProcessor creates a new pipeline step for the given backend
func NewEmitProcessor(b Backend) *EmitProcessor {
	return &EmitProcessor{Backend: b}
}

func (p *EmitProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// Nothing is emitted for a program with errors
	if ctx.Program == nil || ctx.HasErrors() {
		return ctx
	}

	out, err := p.Backend.Emit(ctx)
	if err != nil {
		ctx.Diagnostics.Report(&diagnostics.DiagnosticError{
			Code:    diagnostics.ErrC001,
			Token:   token.Token{},
			File:    ctx.FilePath,
			Message: p.Backend.Name() + " backend: " + err.Error(),
		})
		return ctx
	}
	ctx.Output = out
	return ctx
}
