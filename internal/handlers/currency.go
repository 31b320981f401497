package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// ListCurrencies handles GET /api/v1/currencies
func (h *Handlers) ListCurrencies(c *gin.Context) {
	currencies := make([]gin.H, 0, len(models.AllCurrencies()))
	for _, cur := range models.AllCurrencies() {
		currencies = append(currencies, gin.H{
			"code":   cur,
			"symbol": cur.Symbol(),
			"name":   cur.Name(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"currencies": currencies})
}

// SetCurrency handles PUT /api/v1/currency
func (h *Handlers) SetCurrency(c *gin.Context) {
	var req struct {
		Currency string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.checkoutService.SetCurrency(c.Request.Context(), sessionID(c), req.Currency); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": req.Currency})
}

// GetExchangeRates handles GET /api/v1/exchange-rates
func (h *Handlers) GetExchangeRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rates": h.converter.Snapshot()})
}
