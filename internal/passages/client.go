package passages

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"encoding/json/v2"

	"golang.org/x/time/rate"

	domainerrors "github.com/lecternapp/lectern/internal/errors"
)

const (
	defaultTimeout           = 15 * time.Second
	defaultRequestsPerMinute = 60
	rateBurst                = 5
)

// Client talks to the remote text service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
}

// NewClient creates a text service client. Requests are rate limited;
// the service is a shared public API and a bulk prefetch must not
// hammer it.
func NewClient(opts ClientOptions, logger *slog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rateBurst),
		logger:      logger,
	}
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}

// Fetch retrieves the text of one page in one language. The service
// addresses texts as "<collection>.<page>".
func (c *Client) Fetch(ctx context.Context, collection, page, lang string) (*Passage, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	ref := collection + "." + page
	params := url.Values{}
	params.Set("lang", lang)
	params.Set("context", "0")
	fetchURL := c.baseURL + "/" + url.PathEscape(ref) + "?" + params.Encode()

	c.logger.Debug("fetching passage", "ref", ref, "lang", lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "text service unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domainerrors.NotFoundf("no text for %s page %s", collection, page)
	case resp.StatusCode != http.StatusOK:
		return nil, domainerrors.Unavailablef("text service returned status %d", resp.StatusCode)
	}

	var tr textResponse
	if err := json.UnmarshalRead(resp.Body, &tr); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "parse text service response")
	}

	// The service carries the original alongside the translation; pick
	// by language and fall back to whichever side has content.
	segments := []string(tr.Text)
	if lang == "he" {
		segments = tr.He
	}
	if len(segments) == 0 {
		if lang == "he" {
			segments = tr.Text
		} else {
			segments = tr.He
		}
	}

	title := tr.Book
	if title == "" {
		title = collection
	}

	return &Passage{
		Collection: collection,
		Page:       page,
		Language:   lang,
		Title:      title,
		Segments:   segments,
		Source:     tr.Ref,
	}, nil
}
