package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/lecternapp/lectern/internal/manifest"
	"github.com/lecternapp/lectern/internal/watcher"
)

// ManifestStore holds the manifest the server hands out and can reload
// it when the file changes on disk. Readers always see a complete
// manifest; swaps are atomic under the lock.
type ManifestStore struct {
	path   string
	logger *slog.Logger

	mu       sync.RWMutex
	manifest manifest.Manifest
	loadedAt time.Time
}

// OpenManifestStore loads the manifest at path. The initial load must
// succeed; a server with no catalog has nothing to serve.
func OpenManifestStore(path string, logger *slog.Logger) (*ManifestStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ms := &ManifestStore{
		path:   filepath.Clean(path),
		logger: logger,
	}
	if err := ms.Reload(); err != nil {
		return nil, err
	}
	return ms, nil
}

// Manifest returns the currently loaded catalog.
func (ms *ManifestStore) Manifest() manifest.Manifest {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.manifest
}

// LoadedAt reports when the manifest was last read from disk.
func (ms *ManifestStore) LoadedAt() time.Time {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.loadedAt
}

// Path returns the manifest file location.
func (ms *ManifestStore) Path() string {
	return ms.path
}

// Reload re-reads the manifest from disk and swaps it in.
func (ms *ManifestStore) Reload() error {
	m, err := manifest.Load(ms.path)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	ms.manifest = m
	ms.loadedAt = time.Now()
	ms.mu.Unlock()

	ms.logger.Info("manifest loaded",
		"path", ms.path,
		"collections", len(m),
		"pages", m.TotalPages(),
	)
	return nil
}

// WatchAndReload reloads the manifest whenever the file settles after a
// change. A failed reload keeps the last good copy. Blocks until the
// context is canceled.
func (ms *ManifestStore) WatchAndReload(ctx context.Context) error {
	w, err := watcher.New(ms.logger, watcher.Options{})
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Watch(ms.path); err != nil {
		return fmt.Errorf("watch manifest: %w", err)
	}

	go w.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-w.Events():
			// The watch covers the whole directory; only the manifest
			// itself matters.
			if event.Path != ms.path {
				continue
			}
			if event.Type == watcher.EventRemoved {
				ms.logger.Warn("manifest removed, keeping last loaded copy", "path", ms.path)
				continue
			}
			if err := ms.Reload(); err != nil {
				ms.logger.Error("manifest reload failed", "path", ms.path, "error", err)
			}
		case err := <-w.Errors():
			ms.logger.Warn("manifest watch error", "error", err)
		}
	}
}
