// Package tariff computes import duty and VAT exposure for a prospective
// order from destination, declared value and goods category.
package tariff

import (
	"strings"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

const defaultWeightKg = 0.5

// Estimator derives tariff estimates from the rule tables. It holds no
// mutable state; estimates are recomputed on demand and never persisted.
type Estimator struct {
	logger *zap.Logger
}

// NewEstimator creates a tariff estimator.
func NewEstimator(logger *zap.Logger) *Estimator {
	return &Estimator{logger: logger}
}

// Estimate computes the tariff exposure for a request. Country and a
// positive value are required; every table lookup resolves through a
// fallback rather than an error.
func (e *Estimator) Estimate(req models.TariffRequest) (*models.TariffEstimate, error) {
	if strings.TrimSpace(req.Country) == "" {
		return nil, apperrors.NewValidationError("country", "country is required")
	}
	if req.Value <= 0 {
		return nil, apperrors.NewValidationError("value", "value must be greater than 0")
	}

	country := strings.ToUpper(strings.TrimSpace(req.Country))
	category := req.Category
	if category == "" {
		category = CategoryClothing
	}
	currency := req.Currency
	if currency == "" {
		currency = string(models.CurrencyUSD)
	}
	weight := req.WeightKg
	if weight == 0 {
		weight = defaultWeightKg
	}

	est := &models.TariffEstimate{
		Country:  country,
		Value:    req.Value,
		Currency: currency,
		Category: category,
		WeightKg: weight,
	}

	threshold, hasThreshold := dutyFreeThresholds[country]
	if hasThreshold {
		est.DutyFreeLimit = threshold
	}

	est.VATRate = e.vatRate(country, category)
	est.DutyRate = e.dutyRate(country, category)

	if hasThreshold && req.Value <= threshold {
		est.IsDutyFree = true
		est.TotalWithTariff = req.Value
	} else {
		if category == CategoryClothing {
			// Clothing carries VAT only, no separate customs duty.
			est.VATAmount = req.Value * est.VATRate
			est.TotalTariff = est.VATAmount
		} else {
			est.DutyAmount = req.Value * est.DutyRate
			est.VATAmount = (req.Value + est.DutyAmount) * est.VATRate
			est.TotalTariff = est.DutyAmount + est.VATAmount
		}
		est.TotalWithTariff = req.Value + est.TotalTariff
	}

	est.DocsRequired = documentationRequired(country, req.Value)
	est.ProcessingFee = processingFee(country)
	est.Notes = notes(country, est.IsDutyFree)

	e.logger.Debug("tariff estimated",
		zap.String("country", country),
		zap.String("category", category),
		zap.Float64("value", req.Value),
		zap.Bool("duty_free", est.IsDutyFree),
		zap.Float64("total_tariff", est.TotalTariff))

	return est, nil
}

func (e *Estimator) vatRate(country, category string) float64 {
	table, ok := vatRatesByCategory[category]
	if !ok {
		metrics.TariffTableFallbacks.WithLabelValues("vat_category").Inc()
		e.logger.Debug("unknown category, using clothing VAT table",
			zap.String("category", category))
		table = vatRatesByCategory[CategoryClothing]
	}

	// A zero entry means the table has no real rate for the country;
	// it coalesces to the default the same as a missing entry.
	rate, ok := table[country]
	if !ok || rate == 0 {
		metrics.TariffTableFallbacks.WithLabelValues("vat_country").Inc()
		return defaultVATRate
	}
	return rate
}

func (e *Estimator) dutyRate(country, category string) float64 {
	table, ok := dutyRates[country]
	if !ok {
		metrics.TariffTableFallbacks.WithLabelValues("duty_country").Inc()
		e.logger.Debug("unknown country, using EU duty bucket",
			zap.String("country", country))
		table = dutyRates["EU"]
	}
	return table[category]
}

func documentationRequired(country string, value float64) []string {
	var docs []string

	if value > 1000 {
		docs = append(docs, "Commercial invoice")
	}
	if customsDeclarationCountries[country] {
		docs = append(docs, "Customs declaration form")
	}
	if importDeclarationCountries[country] && value > 1000 {
		docs = append(docs, "Import declaration")
	}
	if len(docs) == 0 {
		docs = append(docs, "Standard shipping documentation")
	}

	return docs
}

func processingFee(country string) float64 {
	if fee, ok := processingFees[country]; ok {
		return fee
	}
	return defaultProcessingFee
}

func notes(country string, isDutyFree bool) string {
	if isDutyFree {
		return dutyFreeNote
	}
	if n, ok := tariffNotes[country]; ok {
		return n
	}
	return genericNote
}
