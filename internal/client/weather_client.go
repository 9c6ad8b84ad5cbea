package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fakhrymubarak/weather-api-conformance/internal/config"
	"golang.org/x/time/rate"
)

// ErrTransport marks failures below HTTP: dial, TLS, timeout, truncated body.
var ErrTransport = errors.New("transport error")

// Response is one raw exchange with the weather endpoint.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Elapsed covers writing the request through reading the full body.
	Elapsed time.Duration
}

// WeatherClient issues current-weather lookups.
type WeatherClient interface {
	// Send performs exactly one GET {baseURL}/weather?q=city&appid=apiKey.
	Send(ctx context.Context, city, apiKey string) (*Response, error)
	// Lookup is Send with the configured key.
	Lookup(ctx context.Context, city string) (*Response, error)
}

type weatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewWeatherClient creates a client for cfg. An optional http.Client replaces
// the default one built from cfg.RequestTimeout.
func NewWeatherClient(cfg config.Config, httpClient ...*http.Client) WeatherClient {
	client := &http.Client{Timeout: cfg.RequestTimeout}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &weatherClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: client,
		limiter:    newLimiter(cfg.RateLimit, cfg.RateBurst),
	}
}

func newLimiter(r float64, burst int) *rate.Limiter {
	if r <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(r), burst)
}

func (c *weatherClient) Lookup(ctx context.Context, city string) (*Response, error) {
	return c.Send(ctx, city, c.apiKey)
}

func (c *weatherClient) Send(ctx context.Context, city, apiKey string) (*Response, error) {
	// Pacing happens before the clock starts so it never counts as latency.
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(city, apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	config.GetLogger().Debugw("Weather request completed",
		"city", city,
		"status", resp.StatusCode,
		"elapsed", elapsed,
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Elapsed:    elapsed,
	}, nil
}

func (c *weatherClient) requestURL(city, apiKey string) string {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", apiKey)
	return c.baseURL + "/weather?" + q.Encode()
}
