package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// HTTPRatesClient fetches USD-based exchange rates from the external feed.
// It satisfies currency.RateSource.
type HTTPRatesClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

// NewHTTPRatesClient creates an HTTP-based exchange rate client.
func NewHTTPRatesClient(cfg config.ServiceConfig, logger *zap.Logger) *HTTPRatesClient {
	return &HTTPRatesClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

type ratesFeedResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates pulls the latest USD→X table from the feed. The feed only
// quotes outbound USD pairs; inbound pairs keep their seeded values.
func (c *HTTPRatesClient) FetchRates(ctx context.Context) ([]models.ExchangeRate, error) {
	url := fmt.Sprintf("%s/v4/latest/USD", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("rates feed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExternalServiceError("rates feed",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var feed ratesFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, apperrors.NewExternalServiceError("rates feed", err)
	}

	now := time.Now()
	var batch []models.ExchangeRate
	for code, rate := range feed.Rates {
		target := models.Currency(code)
		if !target.IsValid() || target == models.CurrencyUSD {
			continue
		}
		batch = append(batch, models.ExchangeRate{
			From:      models.CurrencyUSD,
			To:        target,
			Rate:      rate,
			UpdatedAt: now,
		})
	}

	c.logger.Debug("exchange rates fetched", zap.Int("count", len(batch)))
	return batch, nil
}
