package models

// ShippingAddress is a destination address. Country and zip are required
// for rate and tariff lookups.
type ShippingAddress struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Parcel describes package dimensions for a rate quote.
type Parcel struct {
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Weight       float64 `json:"weight"`
	MassUnit     string  `json:"mass_unit"`
	DistanceUnit string  `json:"distance_unit"`
}

// DefaultParcel is the standard t-shirt package used when the client does
// not supply dimensions.
var DefaultParcel = Parcel{
	Length:       30,
	Width:        20,
	Height:       5,
	Weight:       0.5,
	MassUnit:     "kg",
	DistanceUnit: "cm",
}

// ShippingRate is a single carrier quote in the provider's quote currency.
type ShippingRate struct {
	ID            string   `json:"id"`
	Carrier       string   `json:"carrier"`
	Service       string   `json:"service"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency"`
	EstimatedDays int      `json:"estimated_days"`
	Attributes    []string `json:"attributes"`
	Description   string   `json:"description,omitempty"`
}

// ShippingRatesRequest asks the rate provider for quotes to an address.
type ShippingRatesRequest struct {
	ToAddress ShippingAddress `json:"to_address"`
	Parcel    *Parcel         `json:"parcel,omitempty"`
	Currency  string          `json:"currency,omitempty"`
}

// CarrierOption describes a carrier available for a destination country.
type CarrierOption struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Services []string `json:"services"`
	Notes    string   `json:"notes"`
}
