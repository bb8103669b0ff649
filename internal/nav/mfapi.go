package nav

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.mfapi.in/mf"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	mfapiDateLayout = "02-01-2006"
)

// mfapiResponse is the envelope returned by both the history and latest endpoints.
type mfapiResponse struct {
	Meta struct {
		FundHouse  string `json:"fund_house"`
		SchemeName string `json:"scheme_name"`
	} `json:"meta"`
	Data   []mfapiRecord `json:"data"`
	Status string        `json:"status"`
}

type mfapiRecord struct {
	Date string `json:"date"`
	NAV  string `json:"nav"`
}

// APIError is returned when the provider answers with a non-200 status.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nav provider error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// HTTPProvider fetches NAVs from an mfapi.in compatible HTTP API.
// No Authorization header is sent.
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
}

// HTTPOption configures the provider
type HTTPOption func(*HTTPProvider)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) HTTPOption {
	return func(p *HTTPProvider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRateLimit sets the outbound request rate
func WithRateLimit(requestsPerSecond float64) HTTPOption {
	return func(p *HTTPProvider) {
		burst := max(int(requestsPerSecond), 1)
		p.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithTimeout sets the per-call timeout
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(p *HTTPProvider) {
		p.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(p *HTTPProvider) {
		p.httpClient = c
	}
}

// NewHTTPProvider creates a new NAV provider client
func NewHTTPProvider(opts ...HTTPOption) *HTTPProvider {
	p := &HTTPProvider{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// FetchHistory retrieves the full NAV history for a fund.
func (p *HTTPProvider) FetchHistory(ctx context.Context, fundCode string) (*Series, error) {
	resp, err := p.get(ctx, "/"+url.PathEscape(fundCode))
	if err != nil {
		return nil, err
	}

	series := &Series{
		FundCode:   fundCode,
		SchemeName: resp.Meta.SchemeName,
		FundHouse:  resp.Meta.FundHouse,
		Quotes:     make([]Quote, 0, len(resp.Data)),
	}
	for _, rec := range resp.Data {
		q, ok := parseRecord(rec)
		if !ok {
			continue
		}
		series.Quotes = append(series.Quotes, q)
	}

	return series, nil
}

// FetchLatest retrieves the most recent NAV for a fund.
func (p *HTTPProvider) FetchLatest(ctx context.Context, fundCode string) (*Quote, error) {
	resp, err := p.get(ctx, "/"+url.PathEscape(fundCode)+"/latest")
	if err != nil {
		return nil, err
	}

	for _, rec := range resp.Data {
		nav, err := decimal.NewFromString(strings.TrimSpace(rec.NAV))
		if err != nil || !nav.IsPositive() {
			continue
		}
		q := &Quote{NAV: nav}
		if d, err := time.Parse(mfapiDateLayout, rec.Date); err == nil {
			q.Date = d
		}
		return q, nil
	}

	return nil, nil
}

// get performs a rate-limited GET request bounded by the per-call timeout.
func (p *HTTPProvider) get(ctx context.Context, path string) (*mfapiResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   path,
		}
	}

	var out mfapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &out, nil
}

// parseRecord converts a provider record, dropping malformed or non-positive rows.
func parseRecord(rec mfapiRecord) (Quote, bool) {
	d, err := time.Parse(mfapiDateLayout, strings.TrimSpace(rec.Date))
	if err != nil {
		return Quote{}, false
	}
	nav, err := decimal.NewFromString(strings.TrimSpace(rec.NAV))
	if err != nil || !nav.IsPositive() {
		return Quote{}, false
	}
	return Quote{Date: d, NAV: nav}, true
}
