package index

import (
	"context"

	"go.uber.org/zap"

	"github.com/funvibe/cadenza/internal/logger"
	"github.com/funvibe/cadenza/internal/pipeline"
)

// IndexProcessor records the bindings of the analysis report in the index
// at Path. It does nothing when Path is empty or no analysis ran.
type IndexProcessor struct {
	Path   string
	Logger *zap.Logger
}

func (ip *IndexProcessor) Process(ctx context.Context, pc *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ip.Path == "" || pc.Report == nil {
		return pc
	}

	log := ip.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}
	store, err := Open(ctx, ip.Path, WithLogger(log))
	if err != nil {
		pc.Errors = append(pc.Errors, err)
		return pc
	}
	defer store.Close()

	if err := store.Record(ctx, pc.Report.RunID, pc.Report.Bindings); err != nil {
		pc.Errors = append(pc.Errors, err)
	}
	return pc
}
