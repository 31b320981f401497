package checkout

import (
	"math"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/cart"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/currency"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// Assembler combines a cart snapshot, the selected shipping rate and the
// tariff estimate into the final payable totals. Everything is computed in
// USD; conversion happens once, for the display field.
type Assembler struct {
	converter *currency.Converter
}

// NewAssembler creates a totals assembler.
func NewAssembler(converter *currency.Converter) *Assembler {
	return &Assembler{converter: converter}
}

// Totals computes the current totals for a session. There is no caching:
// any change to cart, rate or estimate is reflected on the next call.
func (a *Assembler) Totals(s *Session) models.OrderTotals {
	subtotal := s.Ledger.SubtotalUSD()

	shipping := cart.ShippingFallback(subtotal)
	if rate := s.SelectedRate(); rate != nil {
		shipping = rate.Amount
	}

	tax := subtotal * cart.TaxRate

	var tariff float64
	if est := s.TariffEstimate(); est != nil {
		tariff = est.TotalTariff
	}

	total := subtotal + shipping + tax + tariff
	cur := s.Currency()

	return models.OrderTotals{
		SubtotalUSD:  subtotal,
		ShippingUSD:  shipping,
		TaxUSD:       tax,
		TariffUSD:    tariff,
		TotalUSD:     total,
		Currency:     cur,
		DisplayTotal: a.converter.Format(total, cur),
	}
}

// MinorUnits converts a USD total into the minor unit of the target
// currency for the payment gateway: cents for two-decimal currencies,
// whole units for JPY.
func (a *Assembler) MinorUnits(totalUSD float64, target models.Currency) int64 {
	converted := a.converter.Convert(totalUSD, target)
	if target.DecimalPlaces() == 0 {
		return int64(math.Round(converted))
	}
	return int64(math.Round(converted * 100))
}
