package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultFetchTimeout is the default timeout for remote data requests
const DefaultFetchTimeout = 10 * time.Second

// Fetcher retrieves the raw bytes of a data document
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// StatusError reports a non-success HTTP status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d for %s", e.StatusCode, e.URL)
}

var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher fetches http(s) URLs over the network and reads file:// URLs
// and bare paths from disk.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures an HTTPFetcher
type Option func(*HTTPFetcher)

// WithTimeout sets the timeout for HTTP requests
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.timeout = d
	}
}

// WithHTTPClient replaces the underlying client
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// NewHTTPFetcher creates a fetcher
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f
}

// Fetch returns the document body. Any status other than 2xx is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid data url %q: %w", rawURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "file":
		return readFile(ctx, u.Path)
	case "":
		return readFile(ctx, rawURL)
	default:
		return nil, fmt.Errorf("unsupported data url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
