// Package lookup implements the remote user-search capability consumed by the
// search controller.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"lookout/internal/config"
	"lookout/internal/domain"
)

const userAgent = "lookout (+https://github.com/lookout-tui/lookout)"

// ErrStatus is wrapped by errors for non-200 responses
var ErrStatus = errors.New("unexpected response status")

// Client looks up users matching a query
type Client interface {
	Lookup(ctx context.Context, query string) ([]domain.User, error)
}

// FuncClient adapts a function to Client
type FuncClient func(ctx context.Context, query string) ([]domain.User, error)

// Lookup calls f
func (f FuncClient) Lookup(ctx context.Context, query string) ([]domain.User, error) {
	return f(ctx, query)
}

// Options configures a GitHubClient
type Options struct {
	Endpoint          string
	PerPage           int
	Token             string
	Timeout           time.Duration
	RequestsPerMinute int // 0 disables pacing
	Burst             int
	HTTPClient        *http.Client
}

// GitHubClient queries the GitHub user-search API
type GitHubClient struct {
	httpClient *http.Client
	endpoint   string
	perPage    int
	token      string
	limiter    *rate.Limiter
}

// NewGitHubClient creates a new search client
func NewGitHubClient(opts Options) *GitHubClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	c := &GitHubClient{
		httpClient: httpClient,
		endpoint:   opts.Endpoint,
		perPage:    opts.PerPage,
		token:      opts.Token,
	}

	if opts.RequestsPerMinute > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), burst)
	}

	return c
}

// FromConfig builds the client stack described by cfg: the GitHub client,
// wrapped in the result cache when it is enabled.
func FromConfig(cfg *config.Config) Client {
	var c Client = NewGitHubClient(Options{
		Endpoint:          cfg.Search.Endpoint,
		PerPage:           cfg.Search.PerPage,
		Token:             cfg.Search.Token,
		Timeout:           cfg.Search.Timeout(),
		RequestsPerMinute: cfg.Search.RequestsPerMinute,
		Burst:             cfg.Search.Burst,
	})
	if cfg.Cache.Enabled {
		c = NewCachedClient(c, cfg.Cache.Size, cfg.Cache.TTL())
	}
	return c
}

// Lookup searches for users matching query
func (c *GitHubClient) Lookup(ctx context.Context, query string) ([]domain.User, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	params := url.Values{}
	params.Set("q", query)
	if c.perPage > 0 {
		params.Set("per_page", strconv.Itoa(c.perPage))
	}
	searchURL := c.endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make search request: %w", err)
	}
	defer resp.Body.Close()

	log.Debug("lookup: response", "query", query, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: search request failed with status %d: %s", ErrStatus, resp.StatusCode, string(body))
	}

	return decodeUsers(resp.Body)
}

// searchResponse keeps items raw so a missing or non-array field can be tolerated
type searchResponse struct {
	Items json.RawMessage `json:"items"`
}

type apiUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

func decodeUsers(body io.Reader) ([]domain.User, error) {
	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	var items []json.RawMessage
	if len(resp.Items) == 0 || json.Unmarshal(resp.Items, &items) != nil {
		return []domain.User{}, nil
	}

	users := make([]domain.User, 0, len(items))
	for _, raw := range items {
		var u apiUser
		if err := json.Unmarshal(raw, &u); err != nil {
			log.Debug("lookup: skipping malformed item", "error", err)
			continue
		}
		users = append(users, domain.User{
			ID:         u.ID,
			Login:      u.Login,
			AvatarURL:  u.AvatarURL,
			ProfileURL: u.HTMLURL,
		})
	}

	return users, nil
}
