package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lecternapp/lectern/internal/organize"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var workers int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Move loose recordings into their collection directories",
		Long: "Organize picks up correctly named recordings sitting directly under the\n" +
			"content root and moves each into the collection directory its name\n" +
			"starts with, creating directories as needed. Files already present at\n" +
			"the target are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			summary, err := organize.New(ctx.logging().Logger).Run(cmd.Context(), cfg.Paths.ContentDir, organize.Options{
				Workers: workers,
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summary.Results) > 0 {
				rows := make([][]string, 0, len(summary.Results))
				for _, r := range summary.Results {
					rows = append(rows, []string{r.Name, r.Collection, string(r.Status), r.Reason})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Collection", "Status", "Reason"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
			}

			label := ""
			if summary.DryRun {
				label = " (dry run)"
			}
			fmt.Fprintf(out, "%d files%s: %d moved, %d skipped, %d failed\n",
				summary.Total, label, summary.Moved, summary.Skipped, summary.Failed)

			if summary.Failed > 0 {
				return fmt.Errorf("%d files could not be moved", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent moves (default 4, capped at 8)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would move without touching anything")
	return cmd
}
