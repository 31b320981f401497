package models

// CartItem is a single cart line. Unit prices are always USD.
type CartItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	UnitPriceUSD float64 `json:"unit_price_usd"`
	Quantity     int     `json:"quantity"`
	Image        string  `json:"image"`
	SKU          string  `json:"sku"`
	Size         string  `json:"size,omitempty"`
	Color        string  `json:"color,omitempty"`
}

// AddCartItemRequest is the payload for adding a line to the cart. Lines
// with the same (product_id, size, color) identity are merged.
type AddCartItemRequest struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	UnitPriceUSD float64 `json:"unit_price_usd"`
	Quantity     int     `json:"quantity"`
	Image        string  `json:"image"`
	SKU          string  `json:"sku"`
	Size         string  `json:"size,omitempty"`
	Color        string  `json:"color,omitempty"`
}

// UpdateQuantityRequest sets a line's quantity. Zero or negative removes
// the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartView is the cart representation returned to clients.
type CartView struct {
	Items       []CartItem `json:"items"`
	ItemCount   int        `json:"item_count"`
	SubtotalUSD float64    `json:"subtotal_usd"`
	TotalUSD    float64    `json:"total_usd"`
}
