package pipeline

// Processor is one pipeline stage: it consumes a context and returns the
// (possibly replaced) context for the next stage.
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

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages
		// (shape passes never abort; only a Load-boundary Fatal does).
		if ctx.Fatal != nil {
			return ctx
		}
	}
	return ctx
}
