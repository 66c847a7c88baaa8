package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/cadenza/internal/ast"
	"github.com/funvibe/cadenza/internal/loader"
	"github.com/funvibe/cadenza/internal/prettyprinter"
)

func newDumpCommand(a *app) *cobra.Command {
	var (
		format  string
		resolve bool
	)
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the statements of a fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			if resolve {
				// Failures are left to check; unresolved names just print bare.
				_ = body.ResolveNames(ast.NewResolver(nil))
			}

			out := cmd.OutOrStdout()
			switch format {
			case "tree":
				fmt.Fprintln(out, prettyprinter.Tree(body))
			case "code":
				fmt.Fprint(out, prettyprinter.Code(body))
			default:
				return fmt.Errorf("format %q must be tree or code", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "tree", "output format: tree or code")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "annotate names with the symbols they resolve to")
	return cmd
}
