package providers

import (
	"github.com/samber/do/v2"

	"github.com/lecternapp/lectern/internal/config"
	"github.com/lecternapp/lectern/internal/logger"
	"github.com/lecternapp/lectern/internal/server"
)

// ProvideManifestStore provides the in-memory manifest the server hands
// out. The initial load must succeed or startup fails.
func ProvideManifestStore(i do.Injector) (*server.ManifestStore, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return server.OpenManifestStore(cfg.Paths.ManifestPath, log.Logger)
}
