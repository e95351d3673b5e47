package network

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/infoboard/internal/logging"
)

// TokenKey is the query parameter carrying the access token.
const TokenKey = "token"

// TokenTransport injects the access token into requests for the info endpoint and
// follows a single 302 redirect itself. It always hands back a response whose body
// is fully read into memory, so callers never deal with a half-consumed stream.
type TokenTransport struct {
	Base     http.RoundTripper
	Endpoint string
	Token    string
	Logger   *slog.Logger
}

// NewTokenTransport wraps base (http.DefaultTransport when nil).
func NewTokenTransport(base http.RoundTripper, endpoint, token string, logger *slog.Logger) *TokenTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TokenTransport{
		Base:     base,
		Endpoint: endpoint,
		Token:    token,
		Logger:   logger,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *TokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Endpoint != "" && t.Token != "" && strings.HasSuffix(req.URL.Path, t.Endpoint) {
		req = req.Clone(req.Context())
		query := req.URL.Query()
		query.Add(TokenKey, t.Token)
		req.URL.RawQuery = query.Encode()
	}

	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	location := resp.Header.Get("Location")
	if resp.StatusCode == http.StatusFound && location != "" {
		target, err := req.URL.Parse(location)
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("invalid redirect location %q: %w", location, err)
		}
		t.Logger.Warn("Redirecting", "host", target.Host, "path", target.Path)

		resp.Body.Close()

		redirected := req.Clone(req.Context())
		redirected.URL = target
		redirected.Host = ""
		resp, err = t.Base.RoundTrip(redirected)
		if err != nil {
			return nil, err
		}
	}

	return materialize(resp)
}

func materialize(resp *http.Response) (*http.Response, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp, nil
}
