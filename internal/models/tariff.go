package models

// TariffRequest asks for an import duty/VAT estimate. Value is the
// declared value in USD equivalent.
type TariffRequest struct {
	Country  string  `json:"country"`
	Value    float64 `json:"value"`
	Currency string  `json:"currency,omitempty"`
	Category string  `json:"category,omitempty"`
	WeightKg float64 `json:"weight,omitempty"`
}

// TariffEstimate is the computed import tax exposure for an order. It is
// derived from rule tables and never persisted.
type TariffEstimate struct {
	Country          string  `json:"country"`
	Value            float64 `json:"value"`
	Currency         string  `json:"currency"`
	Category         string  `json:"category"`
	WeightKg         float64 `json:"weight_kg"`
	IsDutyFree       bool    `json:"is_duty_free"`
	DutyFreeLimit    float64 `json:"duty_free_threshold,omitempty"`
	VATRate          float64 `json:"vat_rate"`
	DutyRate         float64 `json:"duty_rate"`
	VATAmount        float64 `json:"vat_amount"`
	DutyAmount       float64 `json:"duty_amount"`
	TotalTariff      float64 `json:"total_tariff"`
	TotalWithTariff  float64 `json:"total_with_tariff"`
	DocsRequired     []string `json:"documentation_required"`
	ProcessingFee    float64 `json:"processing_fee"`
	Notes            string  `json:"notes"`
}
