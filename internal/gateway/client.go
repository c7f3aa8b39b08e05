package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Config holds settings for the API client
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api
	BaseURL string
	Timeout time.Duration
	// Transport is the underlying round tripper (optional, for testing)
	Transport http.RoundTripper
}

// DefaultConfig returns sensible defaults for the API client
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000/api",
		Timeout: 15 * time.Second,
	}
}

// Client is an HTTP client for the transport booking REST API
type Client struct {
	baseURL        string
	httpClient     *http.Client
	base           http.RoundTripper
	timeout        time.Duration
	authenticated  bool
	onUnauthorized func(context.Context)
}

// New creates a new API client that sends no credential
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: base,
		},
		base:    base,
		timeout: cfg.Timeout,
	}
}

// WithToken returns a copy of the client that attaches token as a bearer credential
func (c *Client) WithToken(token *oauth2.Token) *Client {
	clone := *c
	clone.httpClient = &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(token),
			Base:   c.base,
		},
	}
	clone.authenticated = true
	return &clone
}

// OnUnauthorized returns a copy of the client that calls fn whenever the API answers 401.
// fn receives the context of the failed request.
func (c *Client) OnUnauthorized(fn func(context.Context)) *Client {
	clone := *c
	clone.onUnauthorized = fn
	return &clone
}

// Authenticated reports whether the client attaches a credential
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// Do performs a JSON request. body and result may be nil.
// Failed calls are returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: NetworkFailure, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: NetworkFailure, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= 400 {
		apiErr := newStatusError(resp.StatusCode, respBody)
		if apiErr.Kind == Unauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return apiErr
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &Error{Kind: ServerFailure, Status: resp.StatusCode, Err: fmt.Errorf("failed to parse response: %w", err)}
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Patch performs a PATCH request
func (c *Client) Patch(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPatch, path, body, result)
}

// list decodes either a bare JSON array or a paginated {"results": [...]} body
type list[T any] []T

func (l *list[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return err
	}
	*l = page.Results
	return nil
}
