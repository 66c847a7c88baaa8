package analyzer

import (
	"context"

	"go.uber.org/zap"

	clog "github.com/funvibe/cadenza/internal/logger"
	"github.com/funvibe/cadenza/internal/pipeline"
)

// SemanticAnalyzerProcessor runs both passes over the loaded body. Without
// a Logger it logs to the logger carried by the context.
type SemanticAnalyzerProcessor struct {
	Logger           *zap.Logger
	AccumulateErrors bool
}

func (sap *SemanticAnalyzerProcessor) Process(ctx context.Context, pc *pipeline.PipelineContext) *pipeline.PipelineContext {
	if pc.Body == nil {
		return pc
	}

	logger := sap.Logger
	if logger == nil {
		logger = clog.FromContext(ctx)
	}
	if pc.FilePath != "" {
		logger = logger.With(zap.String("file", pc.FilePath))
	}

	analyzer := New(pc.SymbolTable, Options{Logger: logger, AccumulateErrors: sap.AccumulateErrors})
	pc.SymbolTable = analyzer.SymbolTable()
	pc.Report = analyzer.Analyze(pc.Body)

	if err := pc.Report.Err(); err != nil {
		pc.Errors = append(pc.Errors, err)
	}
	return pc
}
