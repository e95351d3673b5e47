package network

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/infoboard/internal/logging"
)

// DefaultTimeout bounds one logical fetch, redirect included.
const DefaultTimeout = 10 * time.Second

// Client calls the info endpoint.
type Client struct {
	baseURL  *url.URL
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	token     string
	timeout   time.Duration
	transport http.RoundTripper
	logger    *slog.Logger
}

// WithToken sets the access token injected into info requests.
func WithToken(token string) Option {
	return func(c *clientConfig) {
		c.token = token
	}
}

// WithTimeout sets the overall request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithTransport sets the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *clientConfig) {
		c.transport = rt
	}
}

// WithLogger configures a logger for the Client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// NewClient creates a client for baseURL + endpoint.
func NewClient(baseURL, endpoint string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	cfg := clientConfig{
		timeout: DefaultTimeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	endpoint = "/" + strings.TrimPrefix(endpoint, "/")

	return &Client{
		baseURL:  base,
		endpoint: endpoint,
		http: &http.Client{
			Timeout:   cfg.timeout,
			Transport: NewTokenTransport(cfg.transport, endpoint, cfg.token, cfg.logger),
			// Redirects are handled by TokenTransport.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: cfg.logger,
	}, nil
}

// GetInfo fetches and decodes the info payload.
func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	target := c.baseURL.JoinPath(c.endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return InfoResponse{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return InfoResponse{}, err
	}
	defer resp.Body.Close()

	var payload InfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return InfoResponse{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return InfoResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Fetched info", "status", resp.StatusCode, "items", len(payload.Items))
	return payload, nil
}
