package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lecternapp/lectern/internal/manifest"
	"github.com/lecternapp/lectern/internal/validate"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var strict bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify every manifest entry has a file on disk",
		Long: "Verify reads the manifest and checks that each listed page still exists\n" +
			"as a recording under the content root. Advisory by default; --strict\n" +
			"turns missing files into a failing exit status.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			m, err := manifest.Load(cfg.Paths.ManifestPath)
			if err != nil {
				return err
			}

			result := validate.CheckPresence(m, cfg.Paths.ContentDir, cfg.Scan.Extension)

			if jsonOut {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, missing := range result.Missing {
					fmt.Fprintf(out, "missing: %s page %s (%s)\n",
						missing.Collection, missing.Page, missing.Path)
				}
				fmt.Fprintf(out, "%d pages checked, %d missing\n",
					result.Checked, len(result.Missing))
			}

			if strict && !result.AllPresent {
				return fmt.Errorf("%d of %d recordings missing", len(result.Missing), result.Checked)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when recordings are missing")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")
	return cmd
}
