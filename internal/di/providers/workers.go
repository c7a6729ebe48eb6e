package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/lecternapp/lectern/internal/config"
	"github.com/lecternapp/lectern/internal/logger"
	"github.com/lecternapp/lectern/internal/server"
)

// ManifestWatcherHandle stops the background manifest reloader.
type ManifestWatcherHandle struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ManifestWatcherHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	return nil
}

// ProvideManifestWatcher starts hot reloading of the manifest when
// enabled. With watching off the server keeps serving whatever it
// loaded at startup.
func ProvideManifestWatcher(i do.Injector) (*ManifestWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	manifests := do.MustInvoke[*server.ManifestStore](i)

	if !cfg.Server.WatchManifest {
		return &ManifestWatcherHandle{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := manifests.WatchAndReload(ctx); err != nil {
			log.Error("Manifest watch stopped", "error", err)
		}
	}()

	log.Info("Watching manifest for changes", "path", manifests.Path())

	return &ManifestWatcherHandle{cancel: cancel}, nil
}
