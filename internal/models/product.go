package models

import "time"

// Product is a catalog entry. Prices are stored in USD like everything
// else; display conversion happens at the rendering boundary.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceUSD    float64   `json:"price_usd"`
	Image       string    `json:"image"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListFilter narrows a catalog listing.
type ProductListFilter struct {
	Category string
	InStock  *bool
	Limit    int
	Offset   int
}
