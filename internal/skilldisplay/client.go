package skilldisplay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/specialistvlad/skilltree/internal/catalog"
	"github.com/specialistvlad/skilltree/internal/ctxlog"
	"github.com/specialistvlad/skilltree/internal/skillid"
)

const (
	// DefaultCacheSize is the number of skill records kept per client.
	DefaultCacheSize = 512

	apiKeyHeader = "x-api-key"
)

// ErrUnexpectedStatus is returned (wrapped) for any non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client talks to a SkillDisplay instance. It is safe for concurrent use.
type Client struct {
	http      *http.Client
	baseURL   *url.URL
	apiKey    string
	cacheSize int
	cache     *lru.Cache[skillid.ID, *catalog.Skill]
}

var _ catalog.Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the key sent in the x-api-key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithCacheSize sets the number of cached skill records. Values below 1 are
// ignored.
func WithCacheSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.cacheSize = n
		}
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid SkillDisplay URL %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid SkillDisplay URL %q: must be an absolute http(s) URL", baseURL)
	}

	c := &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		baseURL:   u,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	cache, err := lru.New[skillid.ID, *catalog.Skill](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create skill cache: %w", err)
	}
	c.cache = cache
	return c, nil
}

// SkillSet implements catalog.Source.
func (c *Client) SkillSet(ctx context.Context, id int64) (*catalog.SkillSet, error) {
	var resp skillSetResponse
	if err := c.get(ctx, fmt.Sprintf("/api/v1/skillset/%d", id), &resp); err != nil {
		return nil, fmt.Errorf("skill set %d: %w", id, err)
	}
	return resp.toModel(), nil
}

// Skill implements catalog.Source.
func (c *Client) Skill(ctx context.Context, id skillid.ID) (*catalog.Skill, error) {
	if cached, ok := c.cache.Get(id); ok {
		ctxlog.FromContext(ctx).Debug("Skill served from cache.", "skill_id", id)
		return cached.Clone(), nil
	}

	var resp skillResponse
	if err := c.get(ctx, fmt.Sprintf("/api/v1/skill/%d", id), &resp); err != nil {
		return nil, fmt.Errorf("skill %d: %w", id, err)
	}
	s := resp.toModel()
	c.cache.Add(id, s)
	return s.Clone(), nil
}

// Purge drops every cached skill record.
func (c *Client) Purge() {
	c.cache.Purge()
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	logger := ctxlog.FromContext(ctx)
	endpoint := c.baseURL.JoinPath(path).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	logger.Debug("Requesting SkillDisplay API.", "url", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", catalog.ErrNotFound, err)
		}
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}
