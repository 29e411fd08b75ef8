package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org"
	defaultImageURL = "https://image.tmdb.org/t/p/original"
)

// ErrNotFound is returned when a title doesn't exist in TMDB.
var ErrNotFound = errors.New("title not found")

// Client is a TMDB API client. Requests go out at most one per second;
// the limiter keeps full-library enrichment inside the API's fair-use
// window.
type Client struct {
	token      string
	baseURL    string
	imageURL   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithImageBaseURL sets a custom image base URL (for testing).
func WithImageBaseURL(u string) Option {
	return func(c *Client) {
		c.imageURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit overrides the request rate (for testing).
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// NewClient creates a new TMDB client authenticating with the given API
// read access token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:    token,
		baseURL:  defaultBaseURL,
		imageURL: defaultImageURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a rate-limited authenticated GET and decodes the JSON
// response into v.
func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// SearchMovie returns the ranked movie candidates for a title. Year 0
// searches without a year filter.
func (c *Client) SearchMovie(ctx context.Context, title string, year int) ([]searchResult, error) {
	q := url.Values{"query": {title}}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	var resp searchResponse
	if err := c.get(ctx, "/3/search/movie", q, &resp); err != nil {
		return nil, fmt.Errorf("search movie %q: %w", title, err)
	}
	return resp.Results, nil
}

// SearchTV returns the ranked tv candidates for a title.
func (c *Client) SearchTV(ctx context.Context, title string, year int) ([]searchResult, error) {
	q := url.Values{"query": {title}}
	if year > 0 {
		q.Set("first_air_date_year", strconv.Itoa(year))
	}
	var resp searchResponse
	if err := c.get(ctx, "/3/search/tv", q, &resp); err != nil {
		return nil, fmt.Errorf("search tv %q: %w", title, err)
	}
	return resp.Results, nil
}

// GetMovie fetches full movie metadata with credits, certifications and
// images in one request.
func (c *Client) GetMovie(ctx context.Context, id int64) (*movieDetails, error) {
	q := url.Values{"append_to_response": {"credits,release_dates,images"}, "include_image_language": {"en,null"}}
	var d movieDetails
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", id), q, &d); err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return &d, nil
}

// GetTV fetches full tv metadata with aggregate credits, ratings and
// images in one request.
func (c *Client) GetTV(ctx context.Context, id int64) (*tvDetails, error) {
	q := url.Values{"append_to_response": {"aggregate_credits,content_ratings,images"}, "include_image_language": {"en,null"}}
	var d tvDetails
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d", id), q, &d); err != nil {
		return nil, fmt.Errorf("get tv %d: %w", id, err)
	}
	return &d, nil
}

// GetSeason fetches one season's metadata.
func (c *Client) GetSeason(ctx context.Context, tvID int64, season int) (*seasonSummary, error) {
	var d struct {
		seasonSummary
		Episodes []struct{} `json:"episodes"`
	}
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d/season/%d", tvID, season), nil, &d); err != nil {
		return nil, fmt.Errorf("get season %d of tv %d: %w", season, tvID, err)
	}
	s := d.seasonSummary
	if s.EpisodeCount == 0 {
		s.EpisodeCount = len(d.Episodes)
	}
	return &s, nil
}
