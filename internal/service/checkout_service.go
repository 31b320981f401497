// Package service orchestrates the storefront's checkout flow across the
// core components and the external collaborators.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/checkout"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/clients"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/tariff"
)

// CheckoutService drives quotes, totals and payment-intent creation for
// checkout sessions.
type CheckoutService struct {
	sessions        *checkout.Manager
	assembler       *checkout.Assembler
	estimator       *tariff.Estimator
	shippingClient  clients.ShippingClient
	paymentClient   clients.PaymentClient
	notifier        clients.NotificationClient
	publisher       events.Publisher
	logger          *zap.Logger
}

// NewCheckoutService creates the checkout orchestrator.
func NewCheckoutService(
	sessions *checkout.Manager,
	assembler *checkout.Assembler,
	estimator *tariff.Estimator,
	shippingClient clients.ShippingClient,
	paymentClient clients.PaymentClient,
	notifier clients.NotificationClient,
	publisher events.Publisher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		sessions:       sessions,
		assembler:      assembler,
		estimator:      estimator,
		shippingClient: shippingClient,
		paymentClient:  paymentClient,
		notifier:       notifier,
		publisher:      publisher,
		logger:         logger,
	}
}

// Session returns the checkout session for an id.
func (s *CheckoutService) Session(ctx context.Context, sessionID string) *checkout.Session {
	return s.sessions.Get(ctx, sessionID)
}

// SetCurrency validates and persists a session's display currency.
func (s *CheckoutService) SetCurrency(ctx context.Context, sessionID, code string) error {
	cur := models.Currency(strings.ToUpper(code))
	if !cur.IsValid() {
		return apperrors.NewValidationError("currency", fmt.Sprintf("currency %s is not supported", code))
	}
	return s.sessions.SetCurrency(ctx, s.sessions.Get(ctx, sessionID), cur)
}

// GetShippingRates fetches carrier quotes for a destination. The response
// is tagged with the session's quote sequence; the caller applies the
// selected rate through SelectShippingRate.
func (s *CheckoutService) GetShippingRates(ctx context.Context, sessionID string, req *models.ShippingRatesRequest) ([]models.ShippingRate, uint64, error) {
	if strings.TrimSpace(req.ToAddress.Country) == "" {
		return nil, 0, apperrors.NewValidationError("to_address.country", "country is required")
	}
	if strings.TrimSpace(req.ToAddress.Zip) == "" {
		return nil, 0, apperrors.NewValidationError("to_address.zip", "postal code is required")
	}

	session := s.sessions.Get(ctx, sessionID)
	seq := session.NextQuoteSeq()

	rates, err := s.shippingClient.GetRates(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	return rates, seq, nil
}

// SelectShippingRate records the chosen rate for a session. A stale
// sequence means a newer request superseded this one; the selection is
// dropped.
func (s *CheckoutService) SelectShippingRate(ctx context.Context, sessionID string, rate *models.ShippingRate, seq uint64) error {
	if rate.Amount < 0 {
		return apperrors.NewValidationError("amount", "rate amount cannot be negative")
	}
	if rate.EstimatedDays <= 0 {
		return apperrors.NewValidationError("estimated_days", "estimated days must be positive")
	}

	session := s.sessions.Get(ctx, sessionID)
	if !session.ApplyShippingRate(rate, seq) {
		s.logger.Debug("stale shipping rate selection dropped",
			zap.String("session_id", sessionID), zap.Uint64("seq", seq))
	}
	return nil
}

// EstimateTariff recomputes the session's tariff estimate using the cart
// subtotal as the declared value. A stale sequence drops the result.
func (s *CheckoutService) EstimateTariff(ctx context.Context, sessionID string, req models.TariffRequest) (*models.TariffEstimate, error) {
	session := s.sessions.Get(ctx, sessionID)

	if req.Value == 0 {
		req.Value = session.Ledger.SubtotalUSD()
	}

	seq := session.NextQuoteSeq()

	est, err := s.estimator.Estimate(req)
	if err != nil {
		return nil, err
	}

	if !session.ApplyTariffEstimate(est, seq) {
		s.logger.Debug("stale tariff estimate dropped",
			zap.String("session_id", sessionID), zap.Uint64("seq", seq))
	}
	return est, nil
}

// Totals returns the session's current order totals.
func (s *CheckoutService) Totals(ctx context.Context, sessionID string) models.OrderTotals {
	return s.assembler.Totals(s.sessions.Get(ctx, sessionID))
}

// CreatePaymentIntent sends the session's payable total to the payment
// gateway in the chosen currency's minor unit with a lowercase code.
func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, sessionID string) (*models.PaymentIntentResponse, error) {
	session := s.sessions.Get(ctx, sessionID)
	if session.Ledger.ItemCount() == 0 {
		return nil, apperrors.NewValidationError("cart", "cart is empty")
	}

	totals := s.assembler.Totals(session)
	cur := session.Currency()
	req := &models.PaymentIntentRequest{
		Amount:   s.assembler.MinorUnits(totals.TotalUSD, cur),
		Currency: strings.ToLower(string(cur)),
	}

	resp, err := s.paymentClient.CreatePaymentIntent(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishPaymentIntentCreated(ctx, sessionID, resp); err != nil {
		// Log but don't fail; the intent exists regardless.
		s.logger.Error("failed to publish payment intent event",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	return resp, nil
}

// CompleteCheckout sends the confirmation email, publishes the checkout
// event and clears the cart.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, sessionID, email string) (*models.OrderConfirmation, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("email", "email is required")
	}

	session := s.sessions.Get(ctx, sessionID)
	items := session.Ledger.Items()
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("cart", "cart is empty")
	}

	confirmation := &models.OrderConfirmation{
		Email:       email,
		OrderNumber: fmt.Sprintf("CB-%d", time.Now().Unix()),
		Items:       items,
		Totals:      s.assembler.Totals(session),
	}

	if err := s.notifier.SendOrderConfirmation(ctx, confirmation); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishCheckoutCompleted(ctx, sessionID, confirmation); err != nil {
		s.logger.Error("failed to publish checkout completed event",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	session.Ledger.Clear(ctx)

	s.logger.Info("checkout completed",
		zap.String("session_id", sessionID),
		zap.String("order_number", confirmation.OrderNumber),
		zap.Float64("total_usd", confirmation.Totals.TotalUSD))

	return confirmation, nil
}
