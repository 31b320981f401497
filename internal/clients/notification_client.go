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

// NotificationClient sends transactional email through the external
// sender.
type NotificationClient interface {
	SendOrderConfirmation(ctx context.Context, confirmation *models.OrderConfirmation) error
}

// HTTPNotificationClient implements NotificationClient over HTTP.
type HTTPNotificationClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

// NewHTTPNotificationClient creates an HTTP-based notification client.
func NewHTTPNotificationClient(cfg config.ServiceConfig, logger *zap.Logger) *HTTPNotificationClient {
	return &HTTPNotificationClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// SendOrderConfirmation delivers the order confirmation email payload.
func (c *HTTPNotificationClient) SendOrderConfirmation(ctx context.Context, confirmation *models.OrderConfirmation) error {
	body, err := json.Marshal(confirmation)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/emails/order-confirmation", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("order confirmation send failed",
			zap.String("order_number", confirmation.OrderNumber), zap.Error(err))
		return apperrors.NewExternalServiceError("notification service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return apperrors.NewExternalServiceError("notification service",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	c.logger.Info("order confirmation sent",
		zap.String("order_number", confirmation.OrderNumber),
		zap.String("email", confirmation.Email))
	return nil
}
