package cart

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// fakeStore is an in-memory Store for ledger tests.
type fakeStore struct {
	items      map[string][]models.CartItem
	currencies map[string]models.Currency
	loadErr    error
	saveErr    error
	saveCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:      make(map[string][]models.CartItem),
		currencies: make(map[string]models.Currency),
	}
}

func (f *fakeStore) LoadItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.items[sessionID], nil
}

func (f *fakeStore) SaveItems(ctx context.Context, sessionID string, items []models.CartItem) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	saved := make([]models.CartItem, len(items))
	copy(saved, items)
	f.items[sessionID] = saved
	return nil
}

func (f *fakeStore) LoadCurrency(ctx context.Context, sessionID string) (models.Currency, error) {
	if c, ok := f.currencies[sessionID]; ok {
		return c, nil
	}
	return models.CurrencyUSD, nil
}

func (f *fakeStore) SaveCurrency(ctx context.Context, sessionID string, currency models.Currency) error {
	f.currencies[sessionID] = currency
	return nil
}

func newTestLedger(t *testing.T) (*Ledger, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewLedger(context.Background(), "sess_test", store, zap.NewNop()), store
}

func addRequest() *models.AddCartItemRequest {
	return &models.AddCartItemRequest{
		ProductID:    "prod_tee",
		Name:         "Classic Tee",
		SKU:          "TEE-001",
		UnitPriceUSD: 29.99,
		Quantity:     1,
		Size:         "M",
		Color:        "black",
	}
}

func TestAddItem_Validation(t *testing.T) {
	l, _ := newTestLedger(t)

	tests := []struct {
		name   string
		mutate func(*models.AddCartItemRequest)
	}{
		{"missing product id", func(r *models.AddCartItemRequest) { r.ProductID = "" }},
		{"missing name", func(r *models.AddCartItemRequest) { r.Name = "" }},
		{"missing sku", func(r *models.AddCartItemRequest) { r.SKU = "" }},
		{"zero price", func(r *models.AddCartItemRequest) { r.UnitPriceUSD = 0 }},
		{"negative price", func(r *models.AddCartItemRequest) { r.UnitPriceUSD = -1 }},
		{"zero quantity", func(r *models.AddCartItemRequest) { r.Quantity = 0 }},
		{"quantity over cap", func(r *models.AddCartItemRequest) { r.Quantity = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := addRequest()
			tt.mutate(req)
			if _, err := l.AddItem(context.Background(), req); !apperrors.IsValidation(err) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestAddItem_MergesSameVariant(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	first, err := l.AddItem(ctx, addRequest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := l.AddItem(ctx, addRequest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Error("Expected same variant to merge into one line")
	}
	items := l.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestAddItem_DifferentVariantIsNewLine(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	if _, err := l.AddItem(ctx, addRequest()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	other := addRequest()
	other.Size = "L"
	if _, err := l.AddItem(ctx, other); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(l.Items()) != 2 {
		t.Errorf("Expected 2 lines, got %d", len(l.Items()))
	}
}

func TestAddItem_MergeClampsAtCap(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	req := addRequest()
	req.Quantity = 60
	if _, err := l.AddItem(ctx, req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	again := addRequest()
	again.Quantity = 60
	merged, err := l.AddItem(ctx, again)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if merged.Quantity != 99 {
		t.Errorf("Expected merged quantity clamped to 99, got %d", merged.Quantity)
	}
}

func TestUpdateQuantity(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	item, err := l.AddItem(ctx, addRequest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := l.UpdateQuantity(ctx, item.ID, 5); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := l.Items()[0].Quantity; got != 5 {
		t.Errorf("Expected quantity 5, got %d", got)
	}

	if err := l.UpdateQuantity(ctx, item.ID, 100); !apperrors.IsValidation(err) {
		t.Errorf("Expected validation error for quantity over cap, got %v", err)
	}

	if err := l.UpdateQuantity(ctx, "missing", 3); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected not found error, got %v", err)
	}

	// Zero removes the line.
	if err := l.UpdateQuantity(ctx, item.ID, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(l.Items()) != 0 {
		t.Errorf("Expected empty cart after zero-quantity update, got %d lines", len(l.Items()))
	}
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	item, err := l.AddItem(ctx, addRequest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	l.RemoveItem(ctx, "missing")
	if len(l.Items()) != 1 {
		t.Errorf("Expected cart unchanged, got %d lines", len(l.Items()))
	}

	l.RemoveItem(ctx, item.ID)
	if len(l.Items()) != 0 {
		t.Errorf("Expected empty cart, got %d lines", len(l.Items()))
	}
}

func TestShippingFallback(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		expected float64
	}{
		{"empty cart", 0, 9.99},
		{"at threshold", 50.00, 9.99},
		{"just over threshold", 50.01, 0},
		{"well over threshold", 120, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShippingFallback(tt.subtotal); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestView_Totals(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	req := addRequest()
	req.Quantity = 2
	if _, err := l.AddItem(ctx, req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	view := l.View()
	if view.ItemCount != 2 {
		t.Errorf("Expected item count 2, got %d", view.ItemCount)
	}
	if math.Abs(view.SubtotalUSD-59.98) > 1e-9 {
		t.Errorf("Expected subtotal 59.98, got %v", view.SubtotalUSD)
	}
	// Over the free-shipping threshold: subtotal + 0 shipping + 8% tax.
	expected := 59.98 + 59.98*TaxRate
	if math.Abs(view.TotalUSD-expected) > 1e-9 {
		t.Errorf("Expected total %v, got %v", expected, view.TotalUSD)
	}
}

func TestNewLedger_RehydratesFromStore(t *testing.T) {
	store := newFakeStore()
	store.items["sess_test"] = []models.CartItem{
		{ID: "line_1", ProductID: "prod_tee", Name: "Classic Tee", UnitPriceUSD: 29.99, Quantity: 3, SKU: "TEE-001"},
	}

	l := NewLedger(context.Background(), "sess_test", store, zap.NewNop())
	if l.ItemCount() != 3 {
		t.Errorf("Expected rehydrated count 3, got %d", l.ItemCount())
	}
}

func TestNewLedger_LoadFailureStartsEmpty(t *testing.T) {
	store := newFakeStore()
	store.loadErr = errors.New("redis down")

	l := NewLedger(context.Background(), "sess_test", store, zap.NewNop())
	if len(l.Items()) != 0 {
		t.Errorf("Expected empty cart, got %d lines", len(l.Items()))
	}
}

func TestMutations_PersistFailureKeepsMemoryState(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("redis down")

	l := NewLedger(context.Background(), "sess_test", store, zap.NewNop())
	if _, err := l.AddItem(context.Background(), addRequest()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if store.saveCalls != 1 {
		t.Errorf("Expected one persist attempt, got %d", store.saveCalls)
	}
	if len(l.Items()) != 1 {
		t.Errorf("Expected in-memory cart to keep the line, got %d", len(l.Items()))
	}
}
