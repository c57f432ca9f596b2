package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
)

// ErrNotFound indicates TVMaze has no show matching the query.
var ErrNotFound = errors.New("tvmaze: no show found")

// Image holds the poster URLs TVMaze returns for a show.
type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// Show models the subset of the TVMaze show payload the enricher uses.
type Show struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Premiere string `json:"premiered"`
	Image    *Image `json:"image"`
}

// PosterURL returns the best available poster URL, preferring the original
// resolution over the medium thumbnail. Empty when the show has no artwork.
func (s *Show) PosterURL() string {
	if s == nil || s.Image == nil {
		return ""
	}
	if url := strings.TrimSpace(s.Image.Original); url != "" {
		return url
	}
	return strings.TrimSpace(s.Image.Medium)
}

// Lookup defines the TVMaze operations used by the enricher.
type Lookup interface {
	SingleSearch(ctx context.Context, query string) (*Show, error)
}

// Client provides access to the TVMaze API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	interval   time.Duration
	maxRetries int

	mu       sync.Mutex
	lastCall time.Time
}

var _ Lookup = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithInterval sets the minimum spacing between API requests. Zero disables
// pacing.
func WithInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval >= 0 {
			c.interval = interval
		}
	}
}

// WithMaxRetries sets how many attempts are made for transient failures.
func WithMaxRetries(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxRetries = attempts
		}
	}
}

// New creates a TVMaze client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tvmaze base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		interval:   200 * time.Millisecond,
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SingleSearch returns TVMaze's best match for the supplied show name.
// Returns ErrNotFound when TVMaze answers 404.
func (c *Client) SingleSearch(ctx context.Context, query string) (*Show, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	endpoint, err := url.Parse(c.baseURL + "/singlesearch/shows")
	if err != nil {
		return nil, fmt.Errorf("parse tvmaze url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	endpoint.RawQuery = params.Encode()

	var show *Show
	err = retry.Do(
		func() error {
			var attemptErr error
			show, attemptErr = c.singleSearchOnce(ctx, endpoint.String())
			return attemptErr
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, ErrNotFound) && !errors.Is(err, context.Canceled)
		}),
	)
	if err != nil {
		return nil, err
	}
	return show, nil
}

func (c *Client) singleSearchOnce(ctx context.Context, endpoint string) (*Show, error) {
	if err := c.pace(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("tvmaze search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload Show
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tvmaze response: %w", err)
	}
	return &payload, nil
}

// pace enforces the minimum spacing between requests so a large guide does
// not hammer the public API.
func (c *Client) pace(ctx context.Context) error {
	if c.interval <= 0 {
		return nil
	}

	c.mu.Lock()
	wait := c.interval - time.Since(c.lastCall)
	if wait < 0 {
		wait = 0
	}
	c.lastCall = time.Now().Add(wait)
	c.mu.Unlock()

	if wait == 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
