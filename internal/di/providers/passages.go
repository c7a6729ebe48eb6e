package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/lecternapp/lectern/internal/config"
	"github.com/lecternapp/lectern/internal/logger"
	"github.com/lecternapp/lectern/internal/passages"
)

// PassageCacheHandle wraps the on-disk passage cache with Shutdownable.
// The inner cache is nil when caching is disabled.
type PassageCacheHandle struct {
	*passages.Cache
}

// Shutdown implements do.Shutdownable.
func (h *PassageCacheHandle) Shutdown() error {
	if h.Cache != nil {
		return h.Cache.Close()
	}
	return nil
}

// ProvidePassageCache provides the badger-backed passage cache. Caching
// is skipped entirely when passage lookups are off or no cache
// directory is configured.
func ProvidePassageCache(i do.Injector) (*PassageCacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Passages.BaseURL == "" || cfg.Passages.CacheDir == "" {
		return &PassageCacheHandle{}, nil
	}

	ttl := time.Duration(cfg.Passages.CacheTTLHours) * time.Hour
	cache, err := passages.OpenCache(cfg.Passages.CacheDir, ttl, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Passage cache open", "dir", cfg.Passages.CacheDir, "ttl", ttl.String())

	return &PassageCacheHandle{Cache: cache}, nil
}

// PassageServiceHandle carries the passage service. The inner service
// is nil when no text service is configured; the HTTP layer reports
// the feature as unavailable in that case.
type PassageServiceHandle struct {
	*passages.Service
}

// ProvidePassageService provides the passage lookup service.
func ProvidePassageService(i do.Injector) (*PassageServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Passages.BaseURL == "" {
		log.Info("Passage lookups disabled; no text service configured")
		return &PassageServiceHandle{}, nil
	}

	cacheHandle := do.MustInvoke[*PassageCacheHandle](i)

	client := passages.NewClient(passages.ClientOptions{
		BaseURL:           cfg.Passages.BaseURL,
		Timeout:           time.Duration(cfg.Passages.TimeoutSeconds) * time.Second,
		RequestsPerMinute: cfg.Passages.RequestsPerMinute,
	}, log.Logger)

	svc := passages.NewService(client, cacheHandle.Cache, passages.ServiceOptions{
		Language:  cfg.Passages.Language,
		Languages: cfg.Passages.Languages,
	}, log.Logger)

	log.Info("Passage lookups enabled",
		"base_url", cfg.Passages.BaseURL,
		"language", cfg.Passages.Language,
	)

	return &PassageServiceHandle{Service: svc}, nil
}
