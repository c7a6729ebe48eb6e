package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lecternapp/lectern/internal/reference"
	"github.com/lecternapp/lectern/internal/validate"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate naming and structure against the reference list",
		Long: "Check holds the content tree against the canonical collection list:\n" +
			"unknown directory names, misnamed files, page gaps, and collections with\n" +
			"no audio at all. Nothing is written; the exit status carries the verdict.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			list, err := reference.Load(cfg.Paths.ReferencePath)
			if err != nil {
				return err
			}

			report, err := validate.New(ctx.logging().Logger).Structure(cfg.Paths.ContentDir, list, cfg.Scan.Extension)
			if err != nil {
				return err
			}

			if jsonOut {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				printReport(cmd, report)
			}

			if !report.Passed() {
				return fmt.Errorf("validation failed: %d errors, %d warnings", report.Errors(), report.Warnings())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")
	return cmd
}

func printReport(cmd *cobra.Command, report *validate.Report) {
	out := cmd.OutOrStdout()

	if len(report.Messages) > 0 {
		rows := make([][]string, 0, len(report.Messages))
		for _, m := range report.Messages {
			rows = append(rows, []string{string(m.Level), m.Collection, m.Text})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Level", "Collection", "Finding"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft},
		))
	}

	verdict := "passed"
	if !report.Passed() {
		verdict = "FAILED"
	} else if report.Warnings() > 0 {
		verdict = "passed with warnings"
	}
	fmt.Fprintf(out, "%s: %d collections checked, %d errors, %d warnings (%s)\n",
		verdict, report.Collections, report.Errors(), report.Warnings(), report.RunID)
}
