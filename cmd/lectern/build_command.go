package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lecternapp/lectern/internal/catalog"
	"github.com/lecternapp/lectern/internal/config"
	"github.com/lecternapp/lectern/internal/manifest"
	"github.com/lecternapp/lectern/internal/scanner"
	"github.com/lecternapp/lectern/internal/validate"
	"github.com/lecternapp/lectern/internal/watcher"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Scan the content tree and write the manifest",
		Long: "Build walks the immediate subdirectories of the content root, collects\n" +
			"correctly named recordings into the catalog, reports anything it had to\n" +
			"skip, and writes the manifest the player loads.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if err := runBuild(cmd, ctx, cfg); err != nil || !watch {
				return err
			}
			return watchAndRebuild(cmd, ctx, cfg)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Stay running and rebuild when the content tree changes")
	return cmd
}

func runBuild(cmd *cobra.Command, ctx *commandContext, cfg *config.Config) error {
	log := ctx.logging()
	out := cmd.OutOrStdout()

	result, err := scanner.New(log.Logger).Scan(cmd.Context(), cfg.Paths.ContentDir, scanner.Options{
		Extension: cfg.Scan.Extension,
		Workers:   cfg.Scan.Workers,
	})
	if err != nil {
		return err
	}

	m := result.Manifest

	// A rebuild must not lose the upload URLs recorded in the previous
	// manifest. A missing or unreadable previous manifest just means
	// there is nothing to carry.
	if prev, err := manifest.Load(cfg.Paths.ManifestPath); err == nil {
		m.CarryURLs(prev)
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintf(out, "%s: %s: %s\n", d.Level, d.Collection, d.Message)
	}

	rows := make([][]string, 0, len(m))
	for _, name := range m.Names() {
		pages := m.Pages(name)
		rows = append(rows, []string{
			name,
			strconv.Itoa(len(pages)),
			pageRange(pages),
			gapList(pages),
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Collection", "Pages", "Range", "Gaps"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
		))
	}

	presence := validate.CheckPresence(m, cfg.Paths.ContentDir, cfg.Scan.Extension)
	for _, missing := range presence.Missing {
		fmt.Fprintf(out, "warning: %s page %s vanished during the scan (%s)\n",
			missing.Collection, missing.Page, missing.Path)
	}

	if err := m.Write(cfg.Paths.ManifestPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s: %d collections, %d pages (%d files matched, %d skipped)\n",
		cfg.Paths.ManifestPath, len(m), m.TotalPages(), result.Matched, result.Skipped)

	if errs := result.Errors(); errs > 0 {
		return fmt.Errorf("scan completed with %d errors", errs)
	}
	if warns := result.Warnings(); warns > 0 {
		fmt.Fprintf(out, "Completed with %d warnings\n", warns)
	}
	return nil
}

// watchAndRebuild blocks, rebuilding after every settled change under
// the content root. Rebuild failures are logged and the watch carries
// on; only a signal ends it.
func watchAndRebuild(cmd *cobra.Command, ctx *commandContext, cfg *config.Config) error {
	log := ctx.logging()

	sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(log.Logger, watcher.Options{})
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Watch(cfg.Paths.ContentDir); err != nil {
		return err
	}

	go w.Start(sigCtx)

	fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes; Ctrl-C stops")

	for {
		select {
		case <-sigCtx.Done():
			return nil
		case event := <-w.Events():
			// The manifest usually lives under the content root;
			// rebuilding on our own write would loop forever.
			if event.Path == cfg.Paths.ManifestPath {
				continue
			}
			log.Info("Content changed, rebuilding", "path", event.Path, "type", event.Type.String())
			if err := runBuild(cmd, ctx, cfg); err != nil {
				log.Error("Rebuild failed", "error", err)
			}
		case err := <-w.Errors():
			log.Warn("Watch error", "error", err)
		}
	}
}

func pageRange(pages []string) string {
	if len(pages) == 0 {
		return ""
	}
	if len(pages) == 1 {
		return pages[0]
	}
	return pages[0] + ".." + pages[len(pages)-1]
}

func gapList(pages []string) string {
	gaps := catalog.FindGaps(catalog.Numbers(pages))
	if len(gaps) == 0 {
		return "none"
	}
	parts := make([]string, len(gaps))
	for i, g := range gaps {
		parts[i] = strconv.Itoa(g)
	}
	return strings.Join(parts, ", ")
}
