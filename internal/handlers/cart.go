package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// GetCart handles GET /api/v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	session := h.checkoutService.Session(c.Request.Context(), sessionID(c))
	c.JSON(http.StatusOK, session.Ledger.View())
}

// AddCartItem handles POST /api/v1/cart/items
func (h *Handlers) AddCartItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("failed to bind cart item request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session := h.checkoutService.Session(c.Request.Context(), sessionID(c))
	item, err := session.Ledger.AddItem(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item": item,
		"cart": session.Ledger.View(),
	})
}

// UpdateCartItem handles PATCH /api/v1/cart/items/:id
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	itemID := c.Param("id")

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session := h.checkoutService.Session(c.Request.Context(), sessionID(c))
	if err := session.Ledger.UpdateQuantity(c.Request.Context(), itemID, req.Quantity); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session.Ledger.View())
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:id
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	itemID := c.Param("id")

	session := h.checkoutService.Session(c.Request.Context(), sessionID(c))
	session.Ledger.RemoveItem(c.Request.Context(), itemID)

	c.JSON(http.StatusOK, session.Ledger.View())
}

// ClearCart handles DELETE /api/v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	session := h.checkoutService.Session(c.Request.Context(), sessionID(c))
	session.Ledger.Clear(c.Request.Context())

	c.JSON(http.StatusOK, session.Ledger.View())
}
