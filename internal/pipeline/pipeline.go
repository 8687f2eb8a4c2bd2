package pipeline

// Processor is one stage of the compiler.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages decide for themselves whether earlier
// diagnostics prevent them from running; the pipeline only stops early
// once the error limit is reached.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Diagnostics.Aborted() {
			break
		}
	}
	return ctx
}
