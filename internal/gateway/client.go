// Package gateway is the only I/O boundary of the search flow: one paginated request per call.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"pixgrip/internal/domain"
)

// Upstream limits for per_page
const (
	MinPerPage = 3
	MaxPerPage = 200
)

// Searcher fetches one page of results for a query
type Searcher interface {
	Search(ctx context.Context, query string, page int) (domain.Page, error)
}

// Client is the image search API client
type Client struct {
	endpoint    string
	apiKey      string
	perPage     int
	imageType   string
	orientation string
	safeSearch  bool
	httpClient  *http.Client
	logger      *zap.Logger
}

// Option is a functional option for configuring the Client
type Option func(*Client)

// WithEndpoint sets the search endpoint URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithAPIKey sets the API key sent as the key parameter
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithPerPage sets the fixed page size, clamped to the upstream limits
func WithPerPage(n int) Option {
	return func(c *Client) {
		c.perPage = clampPerPage(n)
	}
}

// WithFilters sets the fixed image_type and orientation filters
func WithFilters(imageType, orientation string) Option {
	return func(c *Client) {
		c.imageType = imageType
		c.orientation = orientation
	}
}

// WithSafeSearch toggles the safesearch parameter
func WithSafeSearch(on bool) Option {
	return func(c *Client) {
		c.safeSearch = on
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger for request diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a search client
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:    "https://pixabay.com/api/",
		perPage:     12,
		imageType:   "photo",
		orientation: "horizontal",
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PerPage returns the page size used for every request
func (c *Client) PerPage() int {
	return c.perPage
}

// HTTPClient returns the underlying HTTP client so image downloads share its transport
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Search fetches one page. HasMore is page*perPage < totalHits, and false whenever the page is empty.
func (c *Client) Search(ctx context.Context, query string, page int) (domain.Page, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(c.perPage))
	if c.imageType != "" {
		params.Set("image_type", c.imageType)
	}
	if c.orientation != "" {
		params.Set("orientation", c.orientation)
	}
	if c.safeSearch {
		params.Set("safesearch", "true")
	}

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return domain.Page{}, fmt.Errorf("searching %q page %d: %w", query, page, err)
	}

	items := make([]domain.Image, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		items = append(items, h.toImage())
	}

	return domain.Page{
		Items:     items,
		HasMore:   len(items) > 0 && page*c.perPage < resp.TotalHits,
		TotalHits: resp.TotalHits,
	}, nil
}

// get performs a GET request and decodes the JSON response
func (c *Client) get(ctx context.Context, params url.Values, result any) error {
	start := time.Now()

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("parsing endpoint: %w", err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// The key must not end up in the log file
	logParams := zap.String("q", params.Get("q"))
	logPage := zap.String("page", params.Get("page"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("search request failed",
			logParams, logPage,
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)),
		)
		return &NetworkError{Op: "GET " + u.Host + u.Path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Debug("search request returned error",
			logParams, logPage,
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)),
		)
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &UpstreamError{StatusCode: resp.StatusCode, Message: "malformed payload", Err: err}
	}

	c.logger.Debug("search request completed",
		logParams, logPage,
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func clampPerPage(n int) int {
	if n < MinPerPage {
		return MinPerPage
	}
	if n > MaxPerPage {
		return MaxPerPage
	}
	return n
}
