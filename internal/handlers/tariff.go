package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/tariff"
)

// EstimateTariff handles POST /api/v1/tariff/estimate
func (h *Handlers) EstimateTariff(c *gin.Context) {
	var req models.TariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("failed to bind tariff request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	est, err := h.checkoutService.EstimateTariff(c.Request.Context(), sessionID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"estimate": est})
}

// GetTariffInfo handles GET /api/v1/tariff
func (h *Handlers) GetTariffInfo(c *gin.Context) {
	country := strings.ToUpper(c.DefaultQuery("country", "US"))
	category := c.DefaultQuery("category", tariff.CategoryClothing)

	c.JSON(http.StatusOK, gin.H{
		"country":              country,
		"category":             category,
		"duty_free_thresholds": tariff.Thresholds(),
		"tariff_rates":         tariff.VATRates(category),
		"common_categories":    tariff.Categories(),
		"notes":                "Tariff estimates are for informational purposes only. Final amounts are determined by customs authorities.",
	})
}
