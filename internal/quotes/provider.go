// Package quotes fetches live stock quotes for mark-to-market valuation.
package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

// ErrUnavailable indicates no usable quote exists for a symbol. The
// revaluation batch treats it as skip-not-error: the position keeps its
// stale valuation.
var ErrUnavailable = errors.New("quote unavailable")

// Quote is a point-in-time market quote for one symbol.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
}

// Provider fetches the current quote for a symbol.
type Provider interface {
	Quote(ctx context.Context, symbol string) (*Quote, error)
}

const (
	defaultUserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
	defaultRequestTimeout = 10 * time.Second
)

// quoteResponse is the top-level quote API response.
type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult    `json:"result"`
		Error  *json.RawMessage `json:"error"`
	} `json:"quoteResponse"`
}

// quoteResult is a single quote result from the quote API.
type quoteResult struct {
	Symbol                     string  `json:"symbol"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketOpen          float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
}

// HTTPProvider fetches quotes from a Yahoo-compatible quote endpoint.
type HTTPProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewHTTPProvider creates a quote provider against the given base URL.
// A nil httpClient gets a client with the default request timeout.
func NewHTTPProvider(httpClient *http.Client, baseURL string) *HTTPProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &HTTPProvider{httpClient: httpClient, baseURL: baseURL}
}

// Quote fetches the current quote for one symbol. A missing, zero, or
// non-finite market price is reported as ErrUnavailable, never as a
// zero-valued quote.
func (p *HTTPProvider) Quote(ctx context.Context, symbol string) (*Quote, error) {
	reqURL := fmt.Sprintf("%s?symbols=%s", p.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d for %s", resp.StatusCode, symbol)
	}

	var parsed quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode quote response for %s: %w", symbol, err)
	}

	if len(parsed.QuoteResponse.Result) == 0 {
		return nil, ErrUnavailable
	}

	r := parsed.QuoteResponse.Result[0]
	if r.RegularMarketPrice == 0 || math.IsNaN(r.RegularMarketPrice) || math.IsInf(r.RegularMarketPrice, 0) {
		return nil, ErrUnavailable
	}

	return &Quote{
		Symbol: symbol,
		Price:  r.RegularMarketPrice,
		Open:   r.RegularMarketOpen,
		High:   r.RegularMarketDayHigh,
		Low:    r.RegularMarketDayLow,
		Close:  r.RegularMarketPreviousClose,
	}, nil
}
