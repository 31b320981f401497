// Package checkout holds per-session checkout state and assembles the
// final order totals from the cart, the selected shipping rate and the
// tariff estimate.
package checkout

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/cart"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// Session is the checkout state for one customer. It owns the cart ledger
// handle and the quote state; there is no ambient global session.
type Session struct {
	ID     string
	Ledger *cart.Ledger

	mu           sync.Mutex
	currency     models.Currency
	selectedRate *models.ShippingRate
	tariff       *models.TariffEstimate

	// Monotonic sequence for quote requests. Responses carrying a stale
	// sequence lost the race to a newer request and are dropped.
	quoteSeq uint64
}

// NextQuoteSeq reserves a sequence number for an outbound quote request.
func (s *Session) NextQuoteSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quoteSeq++
	return s.quoteSeq
}

// ApplyShippingRate records the selected rate if seq is still current.
// Returns false when the response was superseded.
func (s *Session) ApplyShippingRate(rate *models.ShippingRate, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.quoteSeq {
		metrics.StaleQuoteDrops.WithLabelValues("shipping").Inc()
		return false
	}
	s.selectedRate = rate
	return true
}

// ApplyTariffEstimate records the estimate if seq is still current.
// Returns false when the response was superseded.
func (s *Session) ApplyTariffEstimate(est *models.TariffEstimate, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.quoteSeq {
		metrics.StaleQuoteDrops.WithLabelValues("tariff").Inc()
		return false
	}
	s.tariff = est
	return true
}

// SelectedRate returns the currently selected shipping rate, if any.
func (s *Session) SelectedRate() *models.ShippingRate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedRate
}

// TariffEstimate returns the current tariff estimate, if any.
func (s *Session) TariffEstimate() *models.TariffEstimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tariff
}

// Currency returns the session's display currency.
func (s *Session) Currency() models.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// SetCurrency updates the session's display currency.
func (s *Session) SetCurrency(c models.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = c
}

// Manager constructs and caches sessions by id. Durable pieces (cart
// lines, currency preference) live in the cart store; the manager itself
// is an ephemeral in-process index.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    cart.Store
	logger   *zap.Logger
}

// NewManager creates a session manager backed by the cart store.
func NewManager(store cart.Store, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		logger:   logger,
	}
}

// Get returns the session for an id, constructing and rehydrating it on
// first use.
func (m *Manager) Get(ctx context.Context, sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		return s
	}

	currency, err := m.store.LoadCurrency(ctx, sessionID)
	if err != nil {
		m.logger.Warn("currency preference load failed, defaulting to USD",
			zap.String("session_id", sessionID), zap.Error(err))
		currency = models.CurrencyUSD
	}

	s := &Session{
		ID:       sessionID,
		Ledger:   cart.NewLedger(ctx, sessionID, m.store, m.logger),
		currency: currency,
	}
	m.sessions[sessionID] = s
	return s
}

// SetCurrency updates and persists the session's display currency.
func (m *Manager) SetCurrency(ctx context.Context, s *Session, c models.Currency) error {
	s.SetCurrency(c)
	return m.store.SaveCurrency(ctx, s.ID, c)
}
