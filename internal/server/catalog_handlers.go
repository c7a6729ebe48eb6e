package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lecternapp/lectern/internal/catalog"
	domainerrors "github.com/lecternapp/lectern/internal/errors"
	"github.com/lecternapp/lectern/internal/util"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getManifest",
		Method:      http.MethodGet,
		Path:        "/api/v1/manifest",
		Summary:     "Get manifest",
		Description: "Returns the full catalog manifest the player loads at startup",
		Tags:        []string{"Catalog"},
	}, s.handleGetManifest)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCollections",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections",
		Summary:     "List collections",
		Description: "Returns a summary of every collection in the catalog",
		Tags:        []string{"Catalog"},
	}, s.handleListCollections)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCollection",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections/{name}",
		Summary:     "Get collection",
		Description: "Returns one collection with its pages and streaming URLs",
		Tags:        []string{"Catalog"},
	}, s.handleGetCollection)
}

// === DTOs ===

// ManifestEntry is one collection in the manifest response. The API
// always uses the extended shape; the bare-array form is a disk format.
type ManifestEntry struct {
	Pages []string          `json:"pages" doc:"Ordered page identifiers"`
	URLs  map[string]string `json:"urls,omitempty" doc:"Remote URLs for uploaded pages"`
}

// GetManifestOutput wraps the manifest response for Huma.
type GetManifestOutput struct {
	Body map[string]ManifestEntry
}

// CollectionSummary is one row in the collection listing.
type CollectionSummary struct {
	Name      string `json:"name" doc:"Directory name of the collection"`
	Title     string `json:"title" doc:"Display title"`
	PageCount int    `json:"page_count" doc:"Number of recorded pages"`
	FirstPage string `json:"first_page,omitempty" doc:"Lowest page identifier"`
	LastPage  string `json:"last_page,omitempty" doc:"Highest page identifier"`
}

// ListCollectionsResponse contains all collection summaries.
type ListCollectionsResponse struct {
	Collections []CollectionSummary `json:"collections" doc:"Collections in name order"`
}

// ListCollectionsOutput wraps the listing for Huma.
type ListCollectionsOutput struct {
	Body ListCollectionsResponse
}

// PageRef is one playable page within a collection.
type PageRef struct {
	Page      string `json:"page" doc:"Page identifier"`
	AudioURL  string `json:"audio_url" doc:"Streaming URL for this page"`
	RemoteURL string `json:"remote_url,omitempty" doc:"Uploaded copy, if any"`
}

// CollectionResponse is the detail view of one collection.
type CollectionResponse struct {
	Name  string    `json:"name" doc:"Directory name of the collection"`
	Title string    `json:"title" doc:"Display title"`
	Pages []PageRef `json:"pages" doc:"Playable pages in catalog order"`
	Gaps  []int     `json:"gaps,omitempty" doc:"Missing page numbers between the first and last page"`
}

// GetCollectionInput identifies the collection to fetch.
type GetCollectionInput struct {
	Name string `path:"name" maxLength:"100" doc:"Collection name"`
}

// GetCollectionOutput wraps the detail view for Huma.
type GetCollectionOutput struct {
	Body CollectionResponse
}

// === Handlers ===

func (s *Server) handleGetManifest(_ context.Context, _ *struct{}) (*GetManifestOutput, error) {
	m := s.manifests.Manifest()

	out := make(map[string]ManifestEntry, len(m))
	for name, c := range m {
		out[name] = ManifestEntry{Pages: c.Pages, URLs: c.URLs}
	}

	return &GetManifestOutput{Body: out}, nil
}

func (s *Server) handleListCollections(_ context.Context, _ *struct{}) (*ListCollectionsOutput, error) {
	m := s.manifests.Manifest()

	summaries := make([]CollectionSummary, 0, len(m))
	for _, name := range m.Names() {
		pages := m.Pages(name)
		summary := CollectionSummary{
			Name:      name,
			Title:     util.DisplayTitle(name),
			PageCount: len(pages),
		}
		if len(pages) > 0 {
			summary.FirstPage = pages[0]
			summary.LastPage = pages[len(pages)-1]
		}
		summaries = append(summaries, summary)
	}

	return &ListCollectionsOutput{Body: ListCollectionsResponse{Collections: summaries}}, nil
}

func (s *Server) handleGetCollection(_ context.Context, input *GetCollectionInput) (*GetCollectionOutput, error) {
	m := s.manifests.Manifest()

	pages := m.Pages(input.Name)
	if pages == nil {
		return nil, domainerrors.NotFoundf("collection %q not in the catalog", input.Name)
	}

	refs := make([]PageRef, 0, len(pages))
	for _, page := range pages {
		ref := PageRef{
			Page:     page,
			AudioURL: "/audio/" + input.Name + "/" + page,
		}
		if remote, ok := m.URL(input.Name, page); ok {
			ref.RemoteURL = remote
		}
		refs = append(refs, ref)
	}

	return &GetCollectionOutput{Body: CollectionResponse{
		Name:  input.Name,
		Title: util.DisplayTitle(input.Name),
		Pages: refs,
		Gaps:  catalog.FindGaps(catalog.Numbers(pages)),
	}}, nil
}
