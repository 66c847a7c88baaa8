package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/funvibe/cadenza/internal/index"
	"github.com/funvibe/cadenza/internal/report"
)

func newRunsCommand(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "runs [RUN_ID]",
		Short: "List recorded runs, or the bindings of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.settings.IndexPath == "" {
				return errors.New("no index configured: pass --index or set index_path")
			}
			ctx := cmd.Context()
			store, err := index.Open(ctx, a.settings.IndexPath)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			switch {
			case name != "":
				bindings, err := store.Lookup(ctx, name)
				if err != nil {
					return err
				}
				printBindings(out, bindings)
			case len(args) == 1:
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("run id: %w", err)
				}
				bindings, err := store.Bindings(ctx, id)
				if err != nil {
					return err
				}
				printBindings(out, bindings)
			default:
				runs, err := store.Runs(ctx)
				if err != nil {
					return err
				}
				for _, r := range runs {
					fmt.Fprintf(out, "%s  %s  %d bindings\n", r.ID, r.RecordedAt.Format("2006-01-02 15:04:05"), r.Bindings)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "show every recorded binding of this name")
	return cmd
}

func printBindings(w io.Writer, bindings []report.Binding) {
	for _, b := range bindings {
		fmt.Fprintf(w, "%3d  %-16s %-15s %-30s scope %d\n", b.Seq, b.Name, b.Kind, b.Type, b.ScopeLevel)
	}
}
