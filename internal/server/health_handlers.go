package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or disabled"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status      string                     `json:"status" doc:"Overall status: healthy or degraded"`
	Version     string                     `json:"version" doc:"Server version"`
	Collections int                        `json:"collections" doc:"Collections in the loaded manifest"`
	Pages       int                        `json:"pages" doc:"Total pages in the loaded manifest"`
	LoadedAt    time.Time                  `json:"loaded_at" doc:"When the manifest was last read from disk"`
	Components  map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	m := s.manifests.Manifest()
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	components["manifest"] = ComponentHealth{Status: "healthy"}

	content := ComponentHealth{Status: "healthy"}
	if info, err := os.Stat(s.opts.ContentDir); err != nil || !info.IsDir() {
		content = ComponentHealth{
			Status:  "degraded",
			Message: "content directory not readable",
		}
		overall = "degraded"
	}
	components["content"] = content

	passagesHealth := ComponentHealth{Status: "healthy"}
	if s.passages == nil {
		passagesHealth = ComponentHealth{Status: "disabled"}
	}
	components["passages"] = passagesHealth

	return &HealthOutput{Body: HealthResponse{
		Status:      overall,
		Version:     s.opts.Version,
		Collections: len(m),
		Pages:       m.TotalPages(),
		LoadedAt:    s.manifests.LoadedAt(),
		Components:  components,
	}}, nil
}
