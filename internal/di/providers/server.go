package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/lecternapp/lectern/internal/config"
	"github.com/lecternapp/lectern/internal/logger"
	"github.com/lecternapp/lectern/internal/server"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	app *server.Server
}

// Shutdown implements do.Shutdownable. In-flight requests get the
// shutdown timeout to finish.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := h.Server.Shutdown(ctx)
	h.app.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server, already listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	manifests := do.MustInvoke[*server.ManifestStore](i)
	passageHandle := do.MustInvoke[*PassageServiceHandle](i)
	version := do.MustInvoke[Version](i)

	app := server.NewServer(manifests, passageHandle.Service, server.Options{
		ContentDir:  cfg.Paths.ContentDir,
		WebDir:      cfg.Paths.WebDir,
		Extension:   cfg.Scan.Extension,
		CORSOrigins: cfg.Server.CORSOrigins,
		Version:     string(version),
	}, log.Logger)

	srv := &http.Server{
		Addr:         cfg.Server.Bind,
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, app: app}, nil
}
