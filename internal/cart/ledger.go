// Package cart maintains the per-session collection of line items and its
// derived figures, persisted through a Store on every mutation.
package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

const (
	maxQuantity = 99

	// Fallback shipping applies when no carrier rate has been selected.
	freeShippingOverUSD = 50
	fallbackShippingUSD = 9.99

	// TaxRate is the flat placeholder tax rate applied to the subtotal.
	TaxRate = 0.08
)

// ShippingFallback returns the flat shipping charge for a subtotal when no
// carrier rate is selected. Orders over the free-shipping threshold ship
// free.
func ShippingFallback(subtotalUSD float64) float64 {
	if subtotalUSD > freeShippingOverUSD {
		return 0
	}
	return fallbackShippingUSD
}

// Ledger is an ordered collection of cart lines for one session. Mutations
// persist the full line list; a persistence failure does not roll back the
// in-memory state (the next successful mutation rewrites everything).
type Ledger struct {
	mu        sync.Mutex
	sessionID string
	items     []models.CartItem
	store     Store
	logger    *zap.Logger
}

// NewLedger creates a ledger for a session, rehydrating any persisted
// lines. Corrupt persisted data has already been discarded by the store.
func NewLedger(ctx context.Context, sessionID string, store Store, logger *zap.Logger) *Ledger {
	items, err := store.LoadItems(ctx, sessionID)
	if err != nil {
		logger.Warn("cart rehydration failed, starting empty",
			zap.String("session_id", sessionID), zap.Error(err))
		items = nil
	}

	return &Ledger{
		sessionID: sessionID,
		items:     items,
		store:     store,
		logger:    logger,
	}
}

func validateAddRequest(req *models.AddCartItemRequest) error {
	if req.ProductID == "" {
		return apperrors.NewValidationError("product_id", "product ID is required")
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if req.SKU == "" {
		return apperrors.NewValidationError("sku", "SKU is required")
	}
	if req.UnitPriceUSD <= 0 {
		return apperrors.NewValidationError("unit_price_usd", "unit price must be positive")
	}
	if req.Quantity < 1 || req.Quantity > maxQuantity {
		return apperrors.NewValidationError("quantity", "quantity must be between 1 and 99")
	}
	return nil
}

// AddItem appends a line or merges into an existing line with the same
// (product, size, color) identity. Merged quantities clamp at 99.
func (l *Ledger) AddItem(ctx context.Context, req *models.AddCartItemRequest) (*models.CartItem, error) {
	if err := validateAddRequest(req); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		item := &l.items[i]
		if item.ProductID == req.ProductID && item.Size == req.Size && item.Color == req.Color {
			item.Quantity += req.Quantity
			if item.Quantity > maxQuantity {
				item.Quantity = maxQuantity
			}
			l.persist(ctx)
			merged := *item
			return &merged, nil
		}
	}

	item := models.CartItem{
		ID:           uuid.NewString(),
		ProductID:    req.ProductID,
		Name:         req.Name,
		UnitPriceUSD: req.UnitPriceUSD,
		Quantity:     req.Quantity,
		Image:        req.Image,
		SKU:          req.SKU,
		Size:         req.Size,
		Color:        req.Color,
	}
	l.items = append(l.items, item)
	l.persist(ctx)
	return &item, nil
}

// RemoveItem deletes a line by id. Removing an absent line is a no-op.
func (l *Ledger) RemoveItem(ctx context.Context, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeLocked(ctx, id)
}

func (l *Ledger) removeLocked(ctx context.Context, id string) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.persist(ctx)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less
// removes the line; quantities above 99 are rejected, same policy as
// AddItem.
func (l *Ledger) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity > maxQuantity {
		return apperrors.NewValidationError("quantity", "quantity must be between 1 and 99")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		l.removeLocked(ctx, id)
		return nil
	}

	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Quantity = quantity
			l.persist(ctx)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// Clear empties the cart.
func (l *Ledger) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.persist(ctx)
}

// Items returns a copy of the current lines.
func (l *Ledger) Items() []models.CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.CartItem, len(l.items))
	copy(out, l.items)
	return out
}

// ItemCount returns the sum of line quantities.
func (l *Ledger) ItemCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, item := range l.items {
		count += item.Quantity
	}
	return count
}

// SubtotalUSD returns the sum of unit price × quantity across lines.
func (l *Ledger) SubtotalUSD() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subtotalLocked()
}

func (l *Ledger) subtotalLocked() float64 {
	var subtotal float64
	for _, item := range l.items {
		subtotal += item.UnitPriceUSD * float64(item.Quantity)
	}
	return subtotal
}

// TotalUSD returns subtotal plus fallback shipping and tax. Tariff is not
// included here; it is layered on by the checkout assembler once a
// destination is known.
func (l *Ledger) TotalUSD() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	subtotal := l.subtotalLocked()
	return subtotal + ShippingFallback(subtotal) + subtotal*TaxRate
}

// View returns the client-facing cart representation.
func (l *Ledger) View() models.CartView {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]models.CartItem, len(l.items))
	copy(items, l.items)

	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	subtotal := l.subtotalLocked()

	return models.CartView{
		Items:       items,
		ItemCount:   count,
		SubtotalUSD: subtotal,
		TotalUSD:    subtotal + ShippingFallback(subtotal) + subtotal*TaxRate,
	}
}

func (l *Ledger) persist(ctx context.Context) {
	if err := l.store.SaveItems(ctx, l.sessionID, l.items); err != nil {
		// Log but don't fail; the cart stays usable in memory.
		l.logger.Error("cart persist failed",
			zap.String("session_id", l.sessionID), zap.Error(err))
	}
}
