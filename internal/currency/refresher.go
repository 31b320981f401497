package currency

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// RateSource supplies fresh exchange rate batches, typically the external
// rate feed client.
type RateSource interface {
	FetchRates(ctx context.Context) ([]models.ExchangeRate, error)
}

// Refresher periodically pulls rates from a source into the converter.
// A failed fetch leaves the previously committed table live.
type Refresher struct {
	converter *Converter
	source    RateSource
	interval  time.Duration
	logger    *zap.Logger
	stopCh    chan struct{}
}

// NewRefresher creates a rate refresher.
func NewRefresher(converter *Converter, source RateSource, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		converter: converter,
		source:    source,
		interval:  interval,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start runs the refresh loop until the context is cancelled or Stop is
// called. The first refresh happens immediately.
func (r *Refresher) Start(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			r.logger.Info("rate refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// Stop terminates the refresh loop.
func (r *Refresher) Stop() {
	close(r.stopCh)
}

func (r *Refresher) refresh(ctx context.Context) {
	batch, err := r.source.FetchRates(ctx)
	if err != nil {
		r.logger.Warn("rate refresh failed, keeping previous table", zap.Error(err))
		return
	}

	r.converter.RefreshRates(batch)
	metrics.RateRefreshes.WithLabelValues("poll").Inc()
	r.logger.Info("exchange rates refreshed", zap.Int("count", len(batch)))
}
