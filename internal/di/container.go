// Package di provides dependency injection configuration for the lectern server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/lecternapp/lectern/internal/config"
	"github.com/lecternapp/lectern/internal/di/providers"
	"github.com/lecternapp/lectern/internal/logger"
	"github.com/lecternapp/lectern/internal/server"
)

// NewContainer creates and configures the DI container for a loaded
// configuration. Providers are lazy; Bootstrap forces them.
func NewContainer(cfg *config.Config, version string) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, providers.Version(version))

	// Core infrastructure
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideManifestStore)

	// Passage lookups
	do.Provide(injector, providers.ProvidePassageCache)
	do.Provide(injector, providers.ProvidePassageService)

	// Workers
	do.Provide(injector, providers.ProvideManifestWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services so startup failures surface before
// the process reports ready.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*server.ManifestStore](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.PassageCacheHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.PassageServiceHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.ManifestWatcherHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
