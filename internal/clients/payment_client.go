// Package clients holds the HTTP collaborators the storefront talks to:
// the shipping-rate provider, the payment gateway, the exchange-rate feed
// and the notification sender. Failures surface as ExternalServiceError
// and are never retried here.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// PaymentClient creates payment intents with the external gateway.
type PaymentClient interface {
	CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (*models.PaymentIntentResponse, error)
}

// HTTPPaymentClient implements PaymentClient over the gateway's HTTP API.
type HTTPPaymentClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

// NewHTTPPaymentClient creates an HTTP-based payment gateway client.
func NewHTTPPaymentClient(cfg config.ServiceConfig, logger *zap.Logger) *HTTPPaymentClient {
	return &HTTPPaymentClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// CreatePaymentIntent asks the gateway for a payment intent. Amount is in
// the currency's minor unit and the code is lowercase; the gateway owns
// everything beyond that.
func (c *HTTPPaymentClient) CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	c.logger.Debug("creating payment intent",
		zap.Int64("amount", req.Amount),
		zap.String("currency", req.Currency))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/payment_intents", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("payment intent request failed", zap.Error(err))
		return nil, apperrors.NewExternalServiceError("payment gateway", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("payment gateway returned error",
			zap.Int("status_code", resp.StatusCode))
		return nil, apperrors.NewExternalServiceError("payment gateway",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var result models.PaymentIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.NewExternalServiceError("payment gateway", err)
	}

	c.logger.Info("payment intent created",
		zap.String("payment_intent_id", result.PaymentIntentID),
		zap.Int64("amount", result.Amount),
		zap.String("currency", result.Currency))

	return &result, nil
}
