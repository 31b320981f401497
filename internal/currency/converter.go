// Package currency converts canonical USD amounts into display currencies
// backed by a refreshable rate table.
package currency

import (
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

type rateKey struct {
	from models.Currency
	to   models.Currency
}

// Converter holds the exchange rate table and performs conversion and
// formatting. Internal arithmetic stays in USD everywhere else in the
// service; conversion is the last step before display.
type Converter struct {
	mu     sync.RWMutex
	rates  map[rateKey]models.ExchangeRate
	logger *zap.Logger
}

// NewConverter creates a converter seeded with the static default table.
// The defaults keep the storefront functional before the first refresh.
func NewConverter(logger *zap.Logger) *Converter {
	c := &Converter{
		rates:  make(map[rateKey]models.ExchangeRate),
		logger: logger,
	}
	c.RefreshRates(defaultRates())
	return c
}

func defaultRates() []models.ExchangeRate {
	now := time.Now()
	return []models.ExchangeRate{
		{From: models.CurrencyUSD, To: models.CurrencyCNY, Rate: 7.2, UpdatedAt: now},
		{From: models.CurrencyUSD, To: models.CurrencyEUR, Rate: 0.92, UpdatedAt: now},
		{From: models.CurrencyUSD, To: models.CurrencyGBP, Rate: 0.79, UpdatedAt: now},
		{From: models.CurrencyUSD, To: models.CurrencyJPY, Rate: 150, UpdatedAt: now},
		{From: models.CurrencyCNY, To: models.CurrencyUSD, Rate: 0.14, UpdatedAt: now},
		{From: models.CurrencyEUR, To: models.CurrencyUSD, Rate: 1.09, UpdatedAt: now},
		{From: models.CurrencyGBP, To: models.CurrencyUSD, Rate: 1.27, UpdatedAt: now},
		{From: models.CurrencyJPY, To: models.CurrencyUSD, Rate: 0.0067, UpdatedAt: now},
	}
}

// Convert returns amountUSD in the target currency using the most recent
// USD→target rate. A missing rate degrades to the unconverted USD amount;
// conversion never fails.
func (c *Converter) Convert(amountUSD float64, target models.Currency) float64 {
	if target == models.CurrencyUSD {
		return amountUSD
	}

	c.mu.RLock()
	rate, ok := c.rates[rateKey{from: models.CurrencyUSD, to: target}]
	c.mu.RUnlock()

	if !ok {
		c.logger.Warn("exchange rate not found, returning USD amount",
			zap.String("target", string(target)))
		metrics.RateLookupMisses.WithLabelValues(string(target)).Inc()
		return amountUSD
	}

	return amountUSD * rate.Rate
}

// Format converts amountUSD to the target currency and renders it with
// the currency symbol and rounding rule (0 decimals for JPY, 2 otherwise).
func (c *Converter) Format(amountUSD float64, target models.Currency) string {
	converted := c.Convert(amountUSD, target)

	if target.DecimalPlaces() == 0 {
		return fmt.Sprintf("%s%d", target.Symbol(), int64(math.Round(converted)))
	}
	return fmt.Sprintf("%s%.2f", target.Symbol(), converted)
}

// RefreshRates upserts rates by (from, to). Pairs absent from the batch
// are retained unchanged, so partial refreshes are legal. Entries with an
// invalid currency or non-positive rate are skipped.
func (c *Converter) RefreshRates(batch []models.ExchangeRate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range batch {
		if !r.From.IsValid() || !r.To.IsValid() {
			c.logger.Warn("skipping rate with unknown currency",
				zap.String("from", string(r.From)), zap.String("to", string(r.To)))
			continue
		}
		if r.Rate <= 0 {
			c.logger.Warn("skipping non-positive exchange rate",
				zap.String("from", string(r.From)),
				zap.String("to", string(r.To)),
				zap.Float64("rate", r.Rate))
			continue
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = time.Now()
		}
		c.rates[rateKey{from: r.From, to: r.To}] = r
	}
}

// Rate returns the current rate for a pair, if loaded.
func (c *Converter) Rate(from, to models.Currency) (models.ExchangeRate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rates[rateKey{from: from, to: to}]
	return r, ok
}

// Snapshot returns a copy of the loaded rate table.
func (c *Converter) Snapshot() []models.ExchangeRate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.ExchangeRate, 0, len(c.rates))
	for _, r := range c.rates {
		out = append(out, r)
	}
	return out
}
