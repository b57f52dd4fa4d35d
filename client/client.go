package client

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hectorherrerafullstack/astroApi/client/internal/api"
)

// DefaultBaseURL is the address of a locally running astrology service.
const DefaultBaseURL = "http://localhost:8000/api"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is the request gateway to the astrology service. Every method is a
// single round trip: no retries, no caching, no shared mutable state, so one
// Client may be used from many goroutines.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client for baseURL (DefaultBaseURL when empty).
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.wrapTransportWithRequestID()
	return c, nil
}

// MustNew constructs a Client with panic-on-error semantics (for tests and examples).
func MustNew(baseURL string, opts ...Option) *Client {
	c, err := New(baseURL, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// BaseURL returns the service address this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// wrapTransportWithRequestID tags every outgoing request with an
// X-Request-ID header so service logs can be correlated with ours.
func (c *Client) wrapTransportWithRequestID() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &requestIDTransport{base: baseTransport}
}

// requestIDTransport wraps an http.RoundTripper to add X-Request-ID when absent.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("X-Request-ID") != "" {
		return t.base.RoundTrip(req)
	}
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("X-Request-ID", uuid.NewString())
	return t.base.RoundTrip(cloned)
}

// --------------------------------------------------------------------
// Gateway operations - delegated to internal/api
// --------------------------------------------------------------------

// ComputeNatalChart sends birth data to the compute endpoint. Compute once
// and persist the result with StoreChart.
func (c *Client) ComputeNatalChart(ctx context.Context, birth BirthData) (*NatalChart, error) {
	start := time.Now()
	chart, err := api.ComputeNatalChart(ctx, c.http, c.baseURL, birth)
	observeRequest(opComputeChart, start, err)
	return chart, err
}

// GetDailyHoroscope fetches the reading for targetDate ("YYYY-MM-DD", or ""
// for the service's today) in timezone ("" means UTC).
func (c *Client) GetDailyHoroscope(ctx context.Context, chart *NatalChart, targetDate, timezone string) (*DailyHoroscope, error) {
	start := time.Now()
	h, err := api.GetDailyHoroscope(ctx, c.http, c.baseURL, chart, targetDate, timezone)
	observeRequest(opDailyHoroscope, start, err)
	return h, err
}

// GetTransits lists planetary positions for date ("" for now) in timezone.
func (c *Client) GetTransits(ctx context.Context, date, timezone string) (*TransitSet, error) {
	start := time.Now()
	ts, err := api.GetTransits(ctx, c.http, c.baseURL, date, timezone)
	observeRequest(opTransits, start, err)
	return ts, err
}

// Health reports whether the service is up, with its source and licence headers.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	start := time.Now()
	hs, err := api.Health(ctx, c.http, c.baseURL)
	observeRequest(opHealth, start, err)
	return hs, err
}
