// Package metrics exposes the service's Prometheus collectors. Lookup
// fallbacks are deliberately counted here: the converter and estimator
// never fail on a missing table entry, so the counters are the only
// signal that a default was used.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RateLookupMisses counts conversions that fell back to the USD
	// amount because no rate was loaded for the pair.
	RateLookupMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "currency_rate_lookup_misses_total",
		Help:      "Conversions that degraded to the unconverted USD amount.",
	}, []string{"target"})

	// RateRefreshes counts applied rate-table refreshes by source.
	RateRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "currency_rate_refreshes_total",
		Help:      "Exchange rate batches applied to the rate table.",
	}, []string{"source"})

	// TariffTableFallbacks counts tariff lookups that used a default
	// because the country or category was absent from a rule table.
	TariffTableFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "tariff_table_fallbacks_total",
		Help:      "Tariff rule lookups resolved via a fallback bucket.",
	}, []string{"table"})

	// StaleQuoteDrops counts shipping/tariff responses discarded because
	// a newer request superseded them.
	StaleQuoteDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "checkout_stale_quote_drops_total",
		Help:      "Quote responses dropped by the last-write-wins guard.",
	}, []string{"kind"})

	// CartRecoveries counts corrupted persisted carts replaced with an
	// empty cart at load time.
	CartRecoveries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "cart_corrupt_payload_recoveries_total",
		Help:      "Persisted carts discarded as unreadable on load.",
	})

	// RequestsTotal counts handled HTTP requests.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})
)
