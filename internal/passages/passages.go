// Package passages resolves the source text behind a recording: given a
// collection and page, it asks the remote text service for the passage
// in the requested language and caches the answer on disk.
//
// The player overlays this text next to the audio; nothing in the
// catalog pipeline depends on it.
package passages

import (
	"context"
	"log/slog"
)

// Passage is one page of source text in one language.
type Passage struct {
	Collection string   `json:"collection"`
	Page       string   `json:"page"`
	Language   string   `json:"language"`
	Title      string   `json:"title,omitempty"`
	Segments   []string `json:"segments"`
	Source     string   `json:"source,omitempty"`
}

// ServiceOptions configures language handling.
type ServiceOptions struct {
	// Language is the default when a request names none.
	Language string
	// Languages is the supported set requests are matched against.
	Languages []string
}

// Service resolves passages, consulting the cache before the remote
// client. A nil cache disables caching.
type Service struct {
	client *Client
	cache  *Cache
	opts   ServiceOptions
	logger *slog.Logger
}

// NewService creates a passage service.
func NewService(client *Client, cache *Cache, opts ServiceOptions, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		client: client,
		cache:  cache,
		opts:   opts,
		logger: logger,
	}
}

// Get returns the passage for a page, from cache when possible. The
// language is normalized against the supported set first, so "en-US"
// and "en" share one cache entry.
func (s *Service) Get(ctx context.Context, collection, page, lang string) (*Passage, error) {
	if lang == "" {
		lang = s.opts.Language
	}
	lang = NormalizeLanguage(lang, s.opts.Languages)

	if s.cache != nil {
		if p, ok := s.cache.Get(collection, page, lang); ok {
			s.logger.Debug("passage cache hit", "collection", collection, "page", page, "lang", lang)
			return p, nil
		}
	}

	p, err := s.client.Fetch(ctx, collection, page, lang)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(p); err != nil {
			s.logger.Warn("passage cache write failed", "error", err)
		}
	}
	return p, nil
}
