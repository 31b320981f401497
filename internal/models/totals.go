package models

// OrderTotals is the derived pricing breakdown for a checkout session.
// All amounts are USD; DisplayTotal is the only converted field.
type OrderTotals struct {
	SubtotalUSD  float64  `json:"subtotal_usd"`
	ShippingUSD  float64  `json:"shipping_usd"`
	TaxUSD       float64  `json:"tax_usd"`
	TariffUSD    float64  `json:"tariff_usd"`
	TotalUSD     float64  `json:"total_usd"`
	Currency     Currency `json:"currency"`
	DisplayTotal string   `json:"display_total"`
}

// PaymentIntentRequest carries the final payable amount to the payment
// gateway. Amount is in the currency's minor unit, code is lowercase.
type PaymentIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentIntentResponse is the gateway's response for a created intent.
type PaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// OrderConfirmation is the payload for the confirmation email sender.
type OrderConfirmation struct {
	Email       string     `json:"email"`
	OrderNumber string     `json:"order_number"`
	Items       []CartItem `json:"items"`
	Totals      OrderTotals `json:"totals"`
}
