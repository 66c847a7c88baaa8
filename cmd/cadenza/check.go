package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/cadenza/internal/analyzer"
	"github.com/funvibe/cadenza/internal/index"
	"github.com/funvibe/cadenza/internal/loader"
	"github.com/funvibe/cadenza/internal/pipeline"
	"github.com/funvibe/cadenza/internal/prettyprinter"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Resolve names and type check a fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.analyze(cmd, pipeline.NewPipelineContext(args[0], nil), false)
		},
	}
}

// analyze runs the full pipeline over pc and prints the report. With
// showProgram the loaded body is printed first.
func (a *app) analyze(cmd *cobra.Command, pc *pipeline.PipelineContext, showProgram bool) error {
	p := pipeline.New(
		&loader.LoaderProcessor{},
		&analyzer.SemanticAnalyzerProcessor{AccumulateErrors: a.settings.AccumulateErrors},
		&index.IndexProcessor{Path: a.settings.IndexPath},
	)
	pc = p.Run(cmd.Context(), pc)
	if pc.Report == nil {
		return pc.Err()
	}

	out := cmd.OutOrStdout()
	color, err := a.useColor(out)
	if err != nil {
		return err
	}
	if showProgram {
		fmt.Fprintln(out, prettyprinter.Code(pc.Body))
	}
	newReportPrinter(out, color).print(pc.Report)

	if !pc.Report.Passed() {
		return errAnalysisFailed
	}
	if err := pc.Err(); err != nil {
		return err
	}
	if a.settings.IndexPath != "" {
		fmt.Fprintf(out, "Recorded run %s in %s\n", pc.Report.RunID, a.settings.IndexPath)
	}
	return nil
}
