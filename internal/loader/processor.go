package loader

import (
	"context"
	"fmt"

	"github.com/funvibe/cadenza/internal/pipeline"
)

// LoaderProcessor decodes the fixture named by the context into its Body.
// Source takes precedence over FilePath when both are set.
type LoaderProcessor struct{}

func (lp *LoaderProcessor) Process(ctx context.Context, pc *pipeline.PipelineContext) *pipeline.PipelineContext {
	if pc.Body != nil {
		return pc
	}

	var err error
	switch {
	case pc.Source != nil:
		pc.Body, err = Parse(pc.Source)
		if err != nil && pc.FilePath != "" {
			err = fmt.Errorf("%s: %w", pc.FilePath, err)
		}
	case pc.FilePath != "":
		pc.Body, err = Load(pc.FilePath)
	default:
		err = fmt.Errorf("no fixture to load")
	}
	if err != nil {
		pc.Body = nil
		pc.Errors = append(pc.Errors, err)
	}
	return pc
}
