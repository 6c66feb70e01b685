// Package upstream is the HTTP gateway to the remote NestHome API. The
// frontend never implements business logic from that API; it only decodes
// the handful of payload shapes the pages depend on.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching the NestHome API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the shared, credential-less side of the gateway: base URL,
// transport, and the public catalog endpoint. Per-browser credentials live
// in Sessions created from it.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	log        zerolog.Logger
}

var _ ports.CatalogGateway = (*Client)(nil)

// New validates the base URL and returns a Client. A default timeout is
// applied when none is provided.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("upstream base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("upstream base url %q: scheme and host required", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		base:       base,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

// NewSession returns a gateway bound to a fresh cookie jar, one per
// browser session. Every call made through it includes that session's
// upstream credentials.
func (c *Client) NewSession() (*Session, error) {
	jar, err := newSessionJar()
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{
		Timeout: c.httpClient.Timeout,
		Jar:     jar,
	}
	return &Session{client: c, jar: jar, httpClient: httpClient}, nil
}

// AllServices implements ports.CatalogGateway against GET /home/all-services.
func (c *Client) AllServices(ctx context.Context) ([]domain.ServiceOffering, error) {
	var offerings []domain.ServiceOffering
	if err := c.getJSON(ctx, c.httpClient, "/home/all-services", &offerings); err != nil {
		return nil, err
	}
	return offerings, nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.base.String(), "/") + path
}

func (c *Client) getJSON(ctx context.Context, httpClient *http.Client, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", domain.ErrUpstreamUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// postJSON sends body (nil for an empty POST) and returns the response.
// The caller owns closing the body.
func (c *Client) postJSON(ctx context.Context, httpClient *http.Client, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), reader)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: POST %s: %v", domain.ErrUpstreamUnavailable, path, err)
	}
	return resp, nil
}
