package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lecternapp/lectern/internal/catalog"
	domainerrors "github.com/lecternapp/lectern/internal/errors"
)

// Per-client budget for passage lookups. The upstream text service has
// its own outbound limiter; this one stops a single player from
// draining it. Unproxied clients share the "direct" bucket.
const (
	passageClientRPS   = 0.5
	passageClientBurst = 10
)

func (s *Server) registerPassageRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getPassage",
		Method:      http.MethodGet,
		Path:        "/api/v1/passages/{collection}/{page}",
		Summary:     "Get passage text",
		Description: "Returns the source text for one page, fetched from the text service and cached",
		Tags:        []string{"Passages"},
	}, s.handleGetPassage)
}

// GetPassageInput identifies the passage to fetch.
type GetPassageInput struct {
	Collection    string `path:"collection" maxLength:"100" doc:"Collection name"`
	Page          string `path:"page" maxLength:"10" doc:"Page identifier"`
	Lang          string `query:"lang" maxLength:"35" doc:"Preferred language code"`
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// PassageResponse contains one page of source text.
type PassageResponse struct {
	Collection string   `json:"collection" doc:"Collection name"`
	Page       string   `json:"page" doc:"Page identifier"`
	Language   string   `json:"language" doc:"Resolved language code"`
	Title      string   `json:"title,omitempty" doc:"Canonical title reported by the text service"`
	Segments   []string `json:"segments" doc:"Text segments in reading order"`
	Source     string   `json:"source,omitempty" doc:"Upstream reference for attribution"`
}

// GetPassageOutput wraps the passage response for Huma.
type GetPassageOutput struct {
	Body PassageResponse
}

func (s *Server) handleGetPassage(ctx context.Context, input *GetPassageInput) (*GetPassageOutput, error) {
	if s.passages == nil {
		return nil, domainerrors.Unavailable("passage lookups are not configured")
	}

	key := extractIP(input.XForwardedFor, input.XRealIP)
	if key == "" {
		key = "direct"
	}
	if !s.limiter.Allow(key) {
		s.logger.Warn("passage rate limit exceeded",
			"ip", key,
			"collection", input.Collection,
			"page", input.Page,
		)
		return nil, domainerrors.RateLimited("too many passage requests")
	}

	if _, err := catalog.PageNumber(input.Page); err != nil {
		return nil, domainerrors.Validationf("invalid page %q", input.Page)
	}

	p, err := s.passages.Get(ctx, input.Collection, input.Page, input.Lang)
	if err != nil {
		return nil, err
	}

	return &GetPassageOutput{Body: PassageResponse{
		Collection: p.Collection,
		Page:       p.Page,
		Language:   p.Language,
		Title:      p.Title,
		Segments:   p.Segments,
		Source:     p.Source,
	}}, nil
}
