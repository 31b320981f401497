// Package handlers holds the gin HTTP handlers. They stay thin: bind,
// delegate, map errors.
package handlers

import (
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/currency"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/repository"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/service"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/tariff"
)

// sessionHeader carries the customer's session identifier.
const sessionHeader = "X-Session-ID"

// Handlers holds all HTTP handlers for the storefront service.
type Handlers struct {
	checkoutService *service.CheckoutService
	converter       *currency.Converter
	estimator       *tariff.Estimator
	productRepo     repository.ProductRepository
	config          *config.Config
	logger          *zap.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	checkoutService *service.CheckoutService,
	converter *currency.Converter,
	estimator *tariff.Estimator,
	productRepo repository.ProductRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		checkoutService: checkoutService,
		converter:       converter,
		estimator:       estimator,
		productRepo:     productRepo,
		config:          cfg,
		logger:          logger,
	}
}
