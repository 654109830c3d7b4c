// Package pushstatus fetches _PushStatus records from a Parse Server and
// decodes the loosely typed response into models.PushStatusEntry values.
package pushstatus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/parsepush/internal/logging"
	"github.com/dmitrijs2005/parsepush/internal/models"
)

const (
	HeaderApplicationID = "X-Parse-Application-Id"
	HeaderRESTAPIKey    = "X-Parse-REST-API-Key"
	HeaderMasterKey     = "X-Parse-Master-Key"

	DefaultTimeout = 60 * time.Second
)

// AuthHeaderName maps the configured credential kind to its header.
func AuthHeaderName(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "rest":
		return HeaderRESTAPIKey, nil
	case "master":
		return HeaderMasterKey, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAuthHeader, kind)
	}
}

// Client issues the status request. It never retries.
type Client struct {
	httpClient *http.Client
	authHeader string
	logger     logging.Logger
	timeout    *time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client, timeout included.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAuthHeader sets the header that carries the secret.
func WithAuthHeader(name string) Option {
	return func(c *Client) { c.authHeader = name }
}

// WithTimeout bounds each request; zero disables the limit. It wins over the
// timeout of a client passed to WithHTTPClient, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = &d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		authHeader: HeaderRESTAPIKey,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Work on a copy so a shared client such as http.DefaultClient is never
	// changed.
	hc := *c.httpClient
	if c.timeout != nil {
		hc.Timeout = *c.timeout
	}
	c.httpClient = &hc
	return c
}

// Endpoint returns <serverURL>/classes/_PushStatus.
func Endpoint(serverURL string) (string, error) {
	return url.JoinPath(serverURL, "classes", "_PushStatus")
}

// Fetch performs the GET and returns the raw body of a 2xx response.
func (c *Client) Fetch(ctx context.Context, cfg models.ServerConfiguration, secret string) ([]byte, error) {
	endpoint, err := Endpoint(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("build status url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create status request: %w", err)
	}
	req.Header.Set(HeaderApplicationID, cfg.AppID)
	if strings.TrimSpace(secret) != "" {
		req.Header.Set(c.authHeader, secret)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch push status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn(ctx, "push status request rejected", "server", cfg.Name, "status", resp.StatusCode)
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrInvalidResponse, err)
	}

	return body, nil
}

// FetchStatuses fetches and decodes in one step.
func (c *Client) FetchStatuses(ctx context.Context, cfg models.ServerConfiguration, secret string) ([]models.PushStatusEntry, error) {
	body, err := c.Fetch(ctx, cfg, secret)
	if err != nil {
		return nil, err
	}

	entries, err := Decode(body)
	if err != nil {
		c.logger.Warn(ctx, "push status response not decodable", "server", cfg.Name, "bytes", len(body))
		return nil, err
	}

	c.logger.Debug(ctx, "push status fetched", "server", cfg.Name, "records", len(entries))
	return entries, nil
}
