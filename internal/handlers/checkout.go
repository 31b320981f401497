package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// GetCheckoutTotals handles GET /api/v1/checkout/totals
func (h *Handlers) GetCheckoutTotals(c *gin.Context) {
	totals := h.checkoutService.Totals(c.Request.Context(), sessionID(c))
	c.JSON(http.StatusOK, totals)
}

// SelectShippingRate handles PUT /api/v1/checkout/shipping-rate
func (h *Handlers) SelectShippingRate(c *gin.Context) {
	var req struct {
		Rate     models.ShippingRate `json:"rate"`
		QuoteSeq uint64              `json:"quote_seq"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("failed to bind rate selection", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.checkoutService.SelectShippingRate(c.Request.Context(), sessionID(c), &req.Rate, req.QuoteSeq); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.checkoutService.Totals(c.Request.Context(), sessionID(c)))
}

// CreatePaymentIntent handles POST /api/v1/checkout/payment-intent
func (h *Handlers) CreatePaymentIntent(c *gin.Context) {
	resp, err := h.checkoutService.CreatePaymentIntent(c.Request.Context(), sessionID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_secret":     resp.ClientSecret,
		"payment_intent_id": resp.PaymentIntentID,
		"amount":            resp.Amount,
		"currency":          resp.Currency,
	})
}

// CompleteCheckout handles POST /api/v1/checkout/confirmation
func (h *Handlers) CompleteCheckout(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	confirmation, err := h.checkoutService.CompleteCheckout(c.Request.Context(), sessionID(c), req.Email)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, confirmation)
}
