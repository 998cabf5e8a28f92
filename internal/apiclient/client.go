// Package apiclient talks to the remote content API: weight samples for the
// fitness panel and the item lists behind the journal, projects, work and
// writing panels.
package apiclient

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

	"golang.org/x/time/rate"

	"github.com/Zachkp/portfolio/internal/logger"
)

// Defaults for Config fields left zero.
const (
	DefaultTimeout    = 15 * time.Second
	DefaultWeightPath = "/api/health/weight"

	// maxErrorBody caps how much of a failed response is kept for the error.
	maxErrorBody = 512
)

// Config configures a Client.
type Config struct {
	BaseURL           string
	WeightPath        string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client is an HTTP client for the content API.
type Client struct {
	baseURL    *url.URL
	weightPath string
	http       *http.Client
	limiter    *rate.Limiter
	log        logger.Logger
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// New creates a Client. A zero RequestsPerSecond disables rate limiting.
func New(cfg Config, log logger.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.WeightPath == "" {
		cfg.WeightPath = DefaultWeightPath
	}
	if log == nil {
		log = logger.NewNop()
	}

	limit := rate.Inf
	burst := cfg.Burst
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		if burst <= 0 {
			burst = 1
		}
	}

	return &Client{
		baseURL:    base,
		weightPath: cfg.WeightPath,
		http:       &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		log:        log,
	}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = query.Encode()
	return u.String()
}

// getJSON performs a rate-limited GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("API request",
		logger.String("url", target),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, URL: target, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", target, err)
	}
	return nil
}

func daysQuery(days int) url.Values {
	return url.Values{"days": []string{strconv.Itoa(days)}}
}
