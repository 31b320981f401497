package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

const maxRatesReturned = 5

// ShippingClient retrieves carrier rate quotes from the external rate
// provider.
type ShippingClient interface {
	GetRates(ctx context.Context, req *models.ShippingRatesRequest) ([]models.ShippingRate, error)
}

// HTTPShippingClient implements ShippingClient over the provider's HTTP
// API.
type HTTPShippingClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

// NewHTTPShippingClient creates an HTTP-based shipping rate client.
func NewHTTPShippingClient(cfg config.ServiceConfig, logger *zap.Logger) *HTTPShippingClient {
	return &HTTPShippingClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

type providerShipmentRequest struct {
	AddressTo models.ShippingAddress `json:"address_to"`
	Parcels   []models.Parcel        `json:"parcels"`
	Currency  string                 `json:"currency,omitempty"`
	Async     bool                   `json:"async"`
}

type providerRate struct {
	ObjectID         string   `json:"object_id"`
	Provider         string   `json:"provider"`
	ServicelevelName string   `json:"servicelevel_name"`
	Amount           string   `json:"amount"`
	Currency         string   `json:"currency"`
	EstimatedDays    int      `json:"estimated_days"`
	Attributes       []string `json:"attributes"`
}

type providerShipmentResponse struct {
	ObjectID string         `json:"object_id"`
	Rates    []providerRate `json:"rates"`
}

// GetRates requests quotes for a destination and returns the provider's
// best offers sorted by price. Provider failures surface as
// ExternalServiceError; the caller decides whether to retry.
func (c *HTTPShippingClient) GetRates(ctx context.Context, req *models.ShippingRatesRequest) ([]models.ShippingRate, error) {
	parcel := models.DefaultParcel
	if req.Parcel != nil {
		parcel = *req.Parcel
	}

	body, err := json.Marshal(providerShipmentRequest{
		AddressTo: req.ToAddress,
		Parcels:   []models.Parcel{parcel},
		Currency:  req.Currency,
		Async:     false,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/shipments", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("shipping rate request failed",
			zap.String("country", req.ToAddress.Country), zap.Error(err))
		return nil, apperrors.NewExternalServiceError("shipping provider", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("shipping provider returned error",
			zap.String("country", req.ToAddress.Country),
			zap.Int("status_code", resp.StatusCode))
		return nil, apperrors.NewExternalServiceError("shipping provider",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var shipment providerShipmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&shipment); err != nil {
		return nil, apperrors.NewExternalServiceError("shipping provider", err)
	}

	rates := convertRates(shipment.Rates)
	c.logger.Info("shipping rates retrieved",
		zap.String("country", req.ToAddress.Country),
		zap.Int("count", len(rates)))
	return rates, nil
}

// convertRates keeps the provider's flagged best offers, sorts them by
// amount and caps the list.
func convertRates(in []providerRate) []models.ShippingRate {
	var out []models.ShippingRate
	for _, r := range in {
		if !hasBestOfferAttribute(r.Attributes) {
			continue
		}
		amount, err := strconv.ParseFloat(r.Amount, 64)
		if err != nil {
			continue
		}
		attrs := r.Attributes
		if attrs == nil {
			attrs = []string{}
		}
		out = append(out, models.ShippingRate{
			ID:            r.ObjectID,
			Carrier:       r.Provider,
			Service:       r.ServicelevelName,
			Amount:        amount,
			Currency:      r.Currency,
			EstimatedDays: r.EstimatedDays,
			Attributes:    attrs,
			Description:   ShippingDescription(r.Provider, r.ServicelevelName, r.EstimatedDays),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Amount < out[j].Amount })
	if len(out) > maxRatesReturned {
		out = out[:maxRatesReturned]
	}
	return out
}

func hasBestOfferAttribute(attrs []string) bool {
	for _, a := range attrs {
		switch a {
		case "CHEAPEST", "FASTEST", "BESTVALUE":
			return true
		}
	}
	return false
}

var carrierDisplayNames = map[string]string{
	"usps":      "USPS",
	"fedex":     "FedEx",
	"ups":       "UPS",
	"dhl":       "DHL",
	"dpd":       "DPD",
	"royalmail": "Royal Mail",
}

// ShippingDescription renders a human-readable label for a quote.
func ShippingDescription(carrier, service string, days int) string {
	name := carrier
	if display, ok := carrierDisplayNames[strings.ToLower(carrier)]; ok {
		name = display
	}

	switch {
	case days <= 3:
		return fmt.Sprintf("%s %s - Express (%d days)", name, service, days)
	case days <= 7:
		return fmt.Sprintf("%s %s - Standard (%d days)", name, service, days)
	default:
		return fmt.Sprintf("%s %s - Economy (%d days)", name, service, days)
	}
}

func (c *HTTPShippingClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "ShippoToken "+c.apiKey)
	}
}
