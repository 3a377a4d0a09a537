package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func quoteServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestHTTPProviderQuote(t *testing.T) {
	t.Run("valid_quote", func(t *testing.T) {
		srv := quoteServer(t, `{"quoteResponse":{"result":[{"symbol":"INFY","regularMarketPrice":1520.5,"regularMarketOpen":1500,"regularMarketDayHigh":1530,"regularMarketDayLow":1495,"regularMarketPreviousClose":1498.25}]}}`, http.StatusOK)
		defer srv.Close()

		p := NewHTTPProvider(srv.Client(), srv.URL)
		q, err := p.Quote(context.Background(), "INFY")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Price != 1520.5 {
			t.Errorf("expected price 1520.5, got %v", q.Price)
		}
		if q.Close != 1498.25 {
			t.Errorf("expected close 1498.25, got %v", q.Close)
		}
	})

	t.Run("nil_client_gets_default", func(t *testing.T) {
		srv := quoteServer(t, `{"quoteResponse":{"result":[{"symbol":"INFY","regularMarketPrice":1520.5}]}}`, http.StatusOK)
		defer srv.Close()

		p := NewHTTPProvider(nil, srv.URL)
		if p.httpClient == nil {
			t.Fatal("expected a default HTTP client")
		}
		if p.httpClient.Timeout != defaultRequestTimeout {
			t.Errorf("expected default timeout %v, got %v", defaultRequestTimeout, p.httpClient.Timeout)
		}
		q, err := p.Quote(context.Background(), "INFY")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Price != 1520.5 {
			t.Errorf("expected price 1520.5, got %v", q.Price)
		}
	})

	t.Run("empty_result_unavailable", func(t *testing.T) {
		srv := quoteServer(t, `{"quoteResponse":{"result":[]}}`, http.StatusOK)
		defer srv.Close()

		p := NewHTTPProvider(srv.Client(), srv.URL)
		_, err := p.Quote(context.Background(), "NOPE")
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("zero_price_unavailable", func(t *testing.T) {
		srv := quoteServer(t, `{"quoteResponse":{"result":[{"symbol":"HALT","regularMarketPrice":0}]}}`, http.StatusOK)
		defer srv.Close()

		p := NewHTTPProvider(srv.Client(), srv.URL)
		_, err := p.Quote(context.Background(), "HALT")
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("non_200_is_error_not_unavailable", func(t *testing.T) {
		srv := quoteServer(t, `rate limited`, http.StatusTooManyRequests)
		defer srv.Close()

		p := NewHTTPProvider(srv.Client(), srv.URL)
		_, err := p.Quote(context.Background(), "INFY")
		if err == nil {
			t.Fatal("expected error")
		}
		if errors.Is(err, ErrUnavailable) {
			t.Fatal("transport failures should not be reported as unavailable")
		}
	})

	t.Run("malformed_body", func(t *testing.T) {
		srv := quoteServer(t, `<html>not json</html>`, http.StatusOK)
		defer srv.Close()

		p := NewHTTPProvider(srv.Client(), srv.URL)
		if _, err := p.Quote(context.Background(), "INFY"); err == nil {
			t.Fatal("expected decode error")
		}
	})
}
