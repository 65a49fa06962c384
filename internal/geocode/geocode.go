// Package geocode resolves free-text addresses to coordinates through a
// Google-compatible geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"npisearch/internal/domain"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultRPS         = 10
	DefaultConcurrency = 4
)

// ErrNoAPIKey is returned when geocoding is attempted without a key
var ErrNoAPIKey = errors.New("geocoding API key not configured")

// StatusError is a non-OK status reported by the geocoding API
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("geocoding failed: %s: %s", e.Status, e.Message)
	}
	return "geocoding failed: " + e.Status
}

type response struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Client geocodes addresses, pacing outbound calls with a token bucket
type Client struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	limiter     *rate.Limiter
	concurrency int
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRPS sets the request rate. Zero or less disables pacing.
func WithRPS(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithConcurrency bounds the number of in-flight requests in GeocodeAll
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewClient creates a geocoder
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		limiter:     rate.NewLimiter(rate.Limit(DefaultRPS), 1),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: DefaultTimeout}
	}
	return c
}

// Geocode resolves one address. found is false when the API has no match.
func (c *Client) Geocode(ctx context.Context, address string) (point domain.GeoPoint, found bool, err error) {
	if c.apiKey == "" {
		return domain.GeoPoint{}, false, ErrNoAPIKey
	}
	if strings.TrimSpace(address) == "" {
		return domain.GeoPoint{}, false, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.GeoPoint{}, false, err
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("invalid geocoder url: %w", err)
	}
	q := u.Query()
	q.Set("address", address)
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.GeoPoint{}, false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.GeoPoint{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.GeoPoint{}, false, &StatusError{Status: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("decoding geocoder response: %w", err)
	}

	switch body.Status {
	case "OK":
		if len(body.Results) == 0 {
			return domain.GeoPoint{}, false, nil
		}
		loc := body.Results[0].Geometry.Location
		return domain.GeoPoint{Lat: loc.Lat, Lng: loc.Lng}, true, nil
	case "ZERO_RESULTS":
		return domain.GeoPoint{}, false, nil
	default:
		return domain.GeoPoint{}, false, &StatusError{Status: body.Status, Message: body.ErrorMessage}
	}
}

// Result is the outcome for one address of a batch
type Result struct {
	Index   int
	Address string
	Point   domain.GeoPoint
	Found   bool
	Err     error
}

// GeocodeAll resolves addresses concurrently. Results keep input order.
// A failed address yields a Result with Err set and never aborts the batch;
// only cancellation of ctx is returned as an error.
func (c *Client) GeocodeAll(ctx context.Context, addresses []string) ([]Result, error) {
	results := make([]Result, len(addresses))

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for i, addr := range addresses {
		g.Go(func() error {
			point, found, err := c.Geocode(ctx, addr)
			results[i] = Result{Index: i, Address: addr, Point: point, Found: found, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
