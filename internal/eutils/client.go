// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils is the HTTP transport for the NCBI E-utilities API. It
// returns raw response bodies and leaves parsing to its callers.
package eutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/get-papers-list/internal/httputil"
	"github.com/pdiddy/get-papers-list/internal/metrics"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// DefaultBaseURL is the E-utilities root.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

// Endpoints used by the pipeline.
const (
	ESearch = "esearch.fcgi"
	EFetch  = "efetch.fcgi"
)

// maxBodyBytes bounds a single response body.
const maxBodyBytes = 64 << 20

// Fetcher issues one GET against an E-utilities endpoint. It returns an
// error on transport failure or a non-200 status, otherwise the body.
type Fetcher interface {
	Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error)
}

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Endpoint, e.StatusCode)
}

// Client implements Fetcher over net/http.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Config  types.SearchConfig
	APIKey  string
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// NewClient returns a client with an http.Client built from cfg.
func NewClient(cfg types.SearchConfig, apiKey string, logger *slog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: cfg.Timeout},
		BaseURL: DefaultBaseURL,
		Config:  cfg,
		APIKey:  apiKey,
		Logger:  logger,
		Metrics: m,
	}
}

// Get requests endpoint with params plus the caller identification
// parameters (api_key, tool, email) and returns the body.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL, err := c.buildURL(endpoint, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}

	name := strings.TrimSuffix(endpoint, ".fcgi")
	c.Metrics.IncRequest(name)
	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.httpClient(), req, c.Config.MaxRetries, c.Logger)
	c.Metrics.ObserveDuration(name, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Endpoint: name, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", name, err)
	}
	return body, nil
}

func (c *Client) buildURL(endpoint string, params url.Values) (string, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base + endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing E-utilities URL: %w", err)
	}

	q := url.Values{}
	for k, vs := range params {
		q[k] = append([]string(nil), vs...)
	}
	if c.APIKey != "" {
		q.Set("api_key", c.APIKey)
	}
	if c.Config.Tool != "" {
		q.Set("tool", c.Config.Tool)
	}
	if c.Config.Email != "" {
		q.Set("email", c.Config.Email)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
