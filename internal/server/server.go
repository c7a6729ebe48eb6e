// Package server exposes the catalog over HTTP for the web player: the
// live manifest, per-collection detail, range-capable audio streaming,
// and proxied passage text.
package server

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lecternapp/lectern/internal/passages"
	"github.com/lecternapp/lectern/internal/ratelimit"
)

// Options configures the HTTP server.
type Options struct {
	// ContentDir is the root the audio files are streamed from.
	ContentDir string
	// WebDir, when set, is served as the static player at /.
	WebDir string
	// Extension is the audio file extension, dot included.
	Extension string
	// CORSOrigins lists allowed origins for the player.
	CORSOrigins []string
	// Version is reported by the API and the health endpoint.
	Version string
}

// Server holds dependencies for the HTTP handlers.
type Server struct {
	manifests *ManifestStore
	passages  *passages.Service
	limiter   *ratelimit.KeyedLimiter
	opts      Options
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
}

// NewServer creates an HTTP server with all routes configured. A nil
// passage service disables passage lookups but keeps the route
// registered so clients get a clear error.
func NewServer(manifests *ManifestStore, passageSvc *passages.Service, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Extension == "" {
		opts.Extension = ".mp3"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Range"},
		// Range headers must be visible for cross-origin seeking.
		ExposedHeaders: []string{"Content-Length", "Content-Range", "Accept-Ranges"},
		MaxAge:         300,
	}))

	humaConfig := huma.DefaultConfig("Lectern API", opts.Version)
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		manifests: manifests,
		passages:  passageSvc,
		limiter:   ratelimit.New(passageClientRPS, passageClientBurst),
		opts:      opts,
		router:    router,
		api:       api,
		logger:    logger,
	}

	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerPassageRoutes()

	// Audio stays on plain chi: http.ServeFile handles range requests,
	// conditional gets, and partial content for seeking.
	router.Get("/audio/{collection}/{page}", s.handleStreamAudio)

	if opts.WebDir != "" {
		router.Handle("/*", http.FileServer(http.Dir(opts.WebDir)))
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.limiter.Stop()
}
