package pipeline

import (
	"context"

	"go.uber.org/multierr"

	"github.com/funvibe/cadenza/internal/ast"
	"github.com/funvibe/cadenza/internal/report"
	"github.com/funvibe/cadenza/internal/symbols"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx context.Context, pc *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, pc *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx context.Context, pc *PipelineContext) *PipelineContext {
	return f(ctx, pc)
}

// PipelineContext carries the state shared between stages.
type PipelineContext struct {
	FilePath string
	Source   []byte

	Body        ast.Body
	SymbolTable *symbols.SymbolTable
	Report      *report.Report

	Errors []error
}

func NewPipelineContext(filePath string, source []byte) *PipelineContext {
	return &PipelineContext{
		FilePath:    filePath,
		Source:      source,
		SymbolTable: symbols.NewSymbolTable(),
	}
}

// Err combines the errors collected by all stages.
func (pc *PipelineContext) Err() error {
	return multierr.Combine(pc.Errors...)
}
