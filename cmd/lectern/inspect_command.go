package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/simonhull/audiometa"
	"github.com/spf13/cobra"

	"github.com/lecternapp/lectern/internal/catalog"
)

const inspectTimeout = 30 * time.Second

func newInspectCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <collection> <page>",
		Short: "Probe a recording's container metadata",
		Long: "Inspect opens the recording for one page and prints what the container\n" +
			"reports: format, duration, embedded tags, and chapter marks.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			collection, page := args[0], args[1]
			if _, err := catalog.PageNumber(page); err != nil {
				return fmt.Errorf("invalid page %q: %w", page, err)
			}

			path := filepath.Join(cfg.Paths.ContentDir, collection,
				catalog.FileName(collection, page, cfg.Scan.Extension))
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("no recording at %s: %w", path, err)
			}

			probeCtx, cancel := context.WithTimeout(cmd.Context(), inspectTimeout)
			defer cancel()

			file, err := audiometa.OpenContext(probeCtx, path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer file.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File: %s\n", path)
			fmt.Fprintf(out, "Size: %d bytes\n", info.Size())
			fmt.Fprintf(out, "Format: %s\n", file.Format.String())
			fmt.Fprintf(out, "Duration: %s\n", file.Audio.Duration)
			if file.Tags.Album != "" {
				fmt.Fprintf(out, "Album: %s\n", file.Tags.Album)
			}
			if file.Tags.Title != "" {
				fmt.Fprintf(out, "Title: %s\n", file.Tags.Title)
			}
			if file.Tags.Artist != "" {
				fmt.Fprintf(out, "Artist: %s\n", file.Tags.Artist)
			}

			if len(file.Chapters) > 0 {
				fmt.Fprintf(out, "\nChapters: %d\n", len(file.Chapters))
				for _, ch := range file.Chapters {
					fmt.Fprintf(out, "  [%d] %s (%.1f - %.1f sec)\n",
						ch.Index, ch.Title,
						ch.StartTime.Seconds(),
						ch.EndTime.Seconds())
				}
			}
			return nil
		},
	}
	return cmd
}
