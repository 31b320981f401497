package models

import "time"

// Currency is a supported display currency. Amounts are always stored in
// USD; other currencies exist only at the display boundary.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyCNY Currency = "CNY"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

var currencySymbols = map[Currency]string{
	CurrencyUSD: "$",
	CurrencyCNY: "¥",
	CurrencyEUR: "€",
	CurrencyGBP: "£",
	CurrencyJPY: "¥",
}

var currencyNames = map[Currency]string{
	CurrencyUSD: "US Dollar",
	CurrencyCNY: "Chinese Yuan",
	CurrencyEUR: "Euro",
	CurrencyGBP: "British Pound",
	CurrencyJPY: "Japanese Yen",
}

// Symbol returns the display symbol for the currency.
func (c Currency) Symbol() string {
	return currencySymbols[c]
}

// Name returns the human-readable currency name.
func (c Currency) Name() string {
	return currencyNames[c]
}

// DecimalPlaces returns the rounding rule for the currency. JPY has no
// minor unit; everything else rounds to cents.
func (c Currency) DecimalPlaces() int {
	if c == CurrencyJPY {
		return 0
	}
	return 2
}

// IsValid reports whether c is one of the supported currencies.
func (c Currency) IsValid() bool {
	_, ok := currencySymbols[c]
	return ok
}

// AllCurrencies returns the closed set of supported currencies.
func AllCurrencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyCNY, CurrencyEUR, CurrencyGBP, CurrencyJPY}
}

// ExchangeRate is a single directional rate. Only USD→X and X→USD pairs
// are populated; cross pairs are not supported.
type ExchangeRate struct {
	From      Currency  `json:"from"`
	To        Currency  `json:"to"`
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
}
