package pipeline

import "context"

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(ctx context.Context, initial *PipelineContext) *PipelineContext {
	pc := initial
	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			pc.Errors = append(pc.Errors, err)
			return pc
		}
		// Stages run even after earlier failures; each one skips itself
		// when its input is missing.
		pc = processor.Process(ctx, pc)
	}
	return pc
}
