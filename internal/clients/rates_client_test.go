package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

func TestFetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v4/latest/USD" {
			t.Errorf("Expected path /v4/latest/USD, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ratesFeedResponse{
			Base: "USD",
			Rates: map[string]float64{
				"EUR": 0.93,
				"JPY": 148.2,
				"USD": 1,     // self-quote, skipped
				"CHF": 0.88,  // unsupported, skipped
			},
		})
	}))
	defer srv.Close()

	client := NewHTTPRatesClient(config.ServiceConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	batch, err := client.FetchRates(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(batch) != 2 {
		t.Fatalf("Expected 2 rates, got %d", len(batch))
	}
	for _, r := range batch {
		if r.From != models.CurrencyUSD {
			t.Errorf("Expected USD base, got %v", r.From)
		}
		if r.To != models.CurrencyEUR && r.To != models.CurrencyJPY {
			t.Errorf("Unexpected target %v", r.To)
		}
	}
}

func TestFetchRates_FeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPRatesClient(config.ServiceConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	if _, err := client.FetchRates(context.Background()); err == nil {
		t.Fatal("Expected error, got nil")
	}
}
