package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/bookfinder/internal/entities"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/books/v1"
	userAgent      = "Bookfinder/1.0 (https://github.com/mrlokans/bookfinder)"
)

// GoogleBooksClient searches the Google Books volumes API.
type GoogleBooksClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		timer := time.NewTimer(r.interval - since)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.lastCall = time.Now()
	return nil
}

type ClientConfig struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	RateLimit time.Duration // minimum gap between requests
}

// NewGoogleBooksClient creates a client. Zero config fields fall back to defaults.
func NewGoogleBooksClient(cfg ClientConfig) *GoogleBooksClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &GoogleBooksClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}
}

// Search requests one page of volumes matching q.
func (c *GoogleBooksClient) Search(ctx context.Context, q Query) (*Page, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.OrderBy == "" {
		q.OrderBy = OrderRelevance
	}

	params := url.Values{}
	params.Set("q", q.Q)
	params.Set("startIndex", strconv.Itoa(q.Offset))
	params.Set("maxResults", strconv.Itoa(q.Limit))
	params.Set("orderBy", string(q.OrderBy))

	var result volumesResponse
	if err := c.getJSON(ctx, "/volumes", params, &result); err != nil {
		return nil, err
	}

	items := result.Items
	if items == nil {
		items = []entities.CatalogItem{}
	}
	return &Page{TotalItems: result.TotalItems, Items: items}, nil
}

// FetchByID returns a single volume. A missing volume and a failed request
// are both reported as ok == false.
func (c *GoogleBooksClient) FetchByID(ctx context.Context, id string) (*entities.CatalogItem, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}

	var item entities.CatalogItem
	if err := c.getJSON(ctx, "/volumes/"+url.PathEscape(id), url.Values{}, &item); err != nil {
		log.Printf("Error getting book %s: %v", id, err)
		return nil, false
	}
	if item.ID == "" {
		return nil, false
	}
	return &item, true
}

func (c *GoogleBooksClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	reqURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status: %d", ErrFetchFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrFetchFailed, err)
	}
	return nil
}

// Google Books API response types (internal)

type volumesResponse struct {
	Kind       string                 `json:"kind"`
	TotalItems int                    `json:"totalItems"`
	Items      []entities.CatalogItem `json:"items"`
}
