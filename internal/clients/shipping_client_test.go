package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

func TestConvertRates_FiltersSortsAndCaps(t *testing.T) {
	in := []providerRate{
		{ObjectID: "r1", Provider: "usps", ServicelevelName: "Priority", Amount: "12.50", EstimatedDays: 3, Attributes: []string{"CHEAPEST"}},
		{ObjectID: "r2", Provider: "fedex", ServicelevelName: "2Day", Amount: "24.00", EstimatedDays: 2, Attributes: []string{"FASTEST"}},
		{ObjectID: "r3", Provider: "ups", ServicelevelName: "Ground", Amount: "9.75", EstimatedDays: 5, Attributes: []string{"BESTVALUE"}},
		{ObjectID: "r4", Provider: "dhl", ServicelevelName: "Express", Amount: "40.00", EstimatedDays: 1, Attributes: nil},
		{ObjectID: "r5", Provider: "usps", ServicelevelName: "Media", Amount: "bogus", EstimatedDays: 8, Attributes: []string{"CHEAPEST"}},
	}

	out := convertRates(in)

	if len(out) != 3 {
		t.Fatalf("Expected 3 rates after filtering, got %d", len(out))
	}
	if out[0].ID != "r3" || out[1].ID != "r1" || out[2].ID != "r2" {
		t.Errorf("Expected rates sorted by amount, got %v %v %v", out[0].ID, out[1].ID, out[2].ID)
	}
	if out[0].Amount != 9.75 {
		t.Errorf("Expected cheapest amount 9.75, got %v", out[0].Amount)
	}
}

func TestConvertRates_CapsAtFive(t *testing.T) {
	var in []providerRate
	for i := 0; i < 8; i++ {
		in = append(in, providerRate{
			ObjectID:         "r",
			Provider:         "usps",
			ServicelevelName: "Priority",
			Amount:           "10.00",
			EstimatedDays:    3,
			Attributes:       []string{"CHEAPEST"},
		})
	}

	if got := len(convertRates(in)); got != maxRatesReturned {
		t.Errorf("Expected %d rates, got %d", maxRatesReturned, got)
	}
}

func TestShippingDescription(t *testing.T) {
	tests := []struct {
		name     string
		carrier  string
		service  string
		days     int
		expected string
	}{
		{"express", "usps", "Priority", 2, "USPS Priority - Express (2 days)"},
		{"standard", "fedex", "Ground", 5, "FedEx Ground - Standard (5 days)"},
		{"economy", "royalmail", "International", 12, "Royal Mail International - Economy (12 days)"},
		{"unknown carrier kept as-is", "acmepost", "Basic", 5, "acmepost Basic - Standard (5 days)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShippingDescription(tt.carrier, tt.service, tt.days)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestGetRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shipments" {
			t.Errorf("Expected path /shipments, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "ShippoToken test-key" {
			t.Errorf("Expected ShippoToken auth header, got %q", auth)
		}

		var req providerShipmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Parcels) != 1 {
			t.Errorf("Expected default parcel attached, got %d", len(req.Parcels))
		}

		json.NewEncoder(w).Encode(providerShipmentResponse{
			ObjectID: "shp_1",
			Rates: []providerRate{
				{ObjectID: "r1", Provider: "usps", ServicelevelName: "Priority", Amount: "12.50", Currency: "USD", EstimatedDays: 3, Attributes: []string{"CHEAPEST"}},
			},
		})
	}))
	defer srv.Close()

	client := NewHTTPShippingClient(config.ServiceConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	rates, err := client.GetRates(context.Background(), &models.ShippingRatesRequest{
		ToAddress: models.ShippingAddress{Country: "US", Zip: "94107"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("Expected 1 rate, got %d", len(rates))
	}
	if rates[0].Carrier != "usps" || rates[0].Amount != 12.50 {
		t.Errorf("Unexpected rate: %+v", rates[0])
	}
}

func TestGetRates_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPShippingClient(config.ServiceConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	_, err := client.GetRates(context.Background(), &models.ShippingRatesRequest{
		ToAddress: models.ShippingAddress{Country: "US", Zip: "94107"},
	})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var externalErr *apperrors.ExternalServiceError
	if !errors.As(err, &externalErr) {
		t.Errorf("Expected ExternalServiceError, got %v", err)
	}
}
