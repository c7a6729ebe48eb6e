package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/lecternapp/lectern/internal/di"
	"github.com/lecternapp/lectern/internal/logger"
)

func newServeCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog, audio, and player over HTTP",
		Long: "Serve starts the HTTP server: the catalog API, range-capable audio\n" +
			"streaming, passage lookups when a text service is configured, and the\n" +
			"static player. Runs until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			injector := di.NewContainer(cfg, version)
			if err := di.Bootstrap(injector); err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}

			log := do.MustInvoke[*logger.Logger](injector)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			log.Info("Shutting down gracefully")
			if err := injector.Shutdown(); err != nil {
				log.Error("Shutdown error", "error", err)
			}
			return nil
		},
	}
	return cmd
}
