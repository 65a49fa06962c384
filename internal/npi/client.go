package npi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the default timeout for registry requests
const DefaultTimeout = 15 * time.Second

// HTTPError reports a non-success status from the proxy or registry
type HTTPError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API request failed: %d %s", e.Status, e.StatusText)
}

// APIError carries the registry's own validation errors
type APIError struct {
	Details []APIErrorDetail
}

func (e *APIError) Error() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		if d.Field != "" {
			msgs = append(msgs, fmt.Sprintf("%s (%s)", d.Description, d.Field))
		} else {
			msgs = append(msgs, d.Description)
		}
	}
	return "registry rejected the search: " + strings.Join(msgs, "; ")
}

// Client queries the provider registry through the proxy
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the timeout for registry requests
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a client for the proxy at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

// URL returns the request URL for params
func (c *Client) URL(params SearchParams) (string, error) {
	q, err := params.Encode()
	if err != nil {
		return "", err
	}
	return c.baseURL + SearchPath + "?" + q, nil
}

// Search runs one registry query
func (c *Client) Search(ctx context.Context, params SearchParams) (*Response, error) {
	u, err := c.URL(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding registry response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, &APIError{Details: out.Errors}
	}
	return &out, nil
}
