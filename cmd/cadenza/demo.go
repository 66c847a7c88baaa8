package main

import (
	_ "embed"

	"github.com/spf13/cobra"

	"github.com/funvibe/cadenza/internal/pipeline"
)

// demoSource is a short composition in 7/8 and B major.
//
//go:embed demo.yaml
var demoSource []byte

func newDemoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Analyse the built-in 7/8 composition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.analyze(cmd, pipeline.NewPipelineContext("demo.yaml", demoSource), true)
		},
	}
}
