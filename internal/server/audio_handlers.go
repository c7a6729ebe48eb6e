package server

import (
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"encoding/json/v2"

	"github.com/go-chi/chi/v5"

	"github.com/lecternapp/lectern/internal/catalog"
	domainerrors "github.com/lecternapp/lectern/internal/errors"
)

// handleStreamAudio serves one page's recording with HTTP range support
// for seeking.
// GET /audio/{collection}/{page}
func (s *Server) handleStreamAudio(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	page := chi.URLParam(r, "page")

	m := s.manifests.Manifest()
	pages := m.Pages(collection)
	if pages == nil {
		s.respondError(w, domainerrors.NotFoundf("collection %q not in the catalog", collection))
		return
	}
	if !slices.Contains(pages, page) {
		s.respondError(w, domainerrors.NotFoundf("collection %q has no page %s", collection, page))
		return
	}

	path := filepath.Join(s.opts.ContentDir, collection, catalog.FileName(collection, page, s.opts.Extension))
	if _, err := os.Stat(path); err != nil {
		s.logger.Error("recording missing from disk",
			"collection", collection,
			"page", page,
			"path", path,
		)
		s.respondError(w, domainerrors.NotFound("recording missing from disk"))
		return
	}

	w.Header().Set("Content-Type", audioContentType(s.opts.Extension))
	// Recordings never change once published.
	w.Header().Set("Cache-Control", "private, max-age=86400")

	// http.ServeFile handles range requests, Content-Range headers,
	// Accept-Ranges, and If-Range conditionals.
	http.ServeFile(w, r, path)
}

// respondError writes a domain error in the same JSON shape the API
// error handler produces.
func (s *Server) respondError(w http.ResponseWriter, err *domainerrors.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus())

	body := &APIError{
		Code:    string(err.Code),
		Message: err.Message,
	}
	if data, merr := json.Marshal(body); merr == nil {
		w.Write(data)
	}
}
