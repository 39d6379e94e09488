package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetCartHandler handles GET /api/cart.
func (h *BookingHandler) GetCartHandler(c *gin.Context) {
	userID := c.GetString("userID")
	cart, err := h.Cart.GetCart(userID)
	if err != nil {
		h.Logger.Error("Failed to load cart", zap.String("userId", userID), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddToCartHandler handles POST /api/cart/add. An unavailable slot is a
// conflict; the message explains why and may carry a suggested alternative.
func (h *BookingHandler) AddToCartHandler(c *gin.Context) {
	userID := c.GetString("userID")
	req, ok := bindReservationRequest(c)
	if !ok {
		return
	}

	cart, message, err := h.Cart.AddToCart(userID, req)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Error("Add to cart failed", zap.String("userId", userID), zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to add to cart"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	// AddToCart appends the new line item last; surface its price so the
	// client can show it without digging through the cart.
	resp := gin.H{"message": message, "cart": cart}
	if n := len(cart.Items); n > 0 {
		resp["calculatedPrice"] = cart.Items[n-1].CalculatedPrice
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveFromCartHandler handles DELETE /api/cart/remove. When hour bounds are
// supplied only the matching line item is removed; otherwise every item for
// that service and date goes.
func (h *BookingHandler) RemoveFromCartHandler(c *gin.Context) {
	userID := c.GetString("userID")
	req, ok := bindReservationRequest(c)
	if !ok {
		return
	}

	cart, removed, err := h.Cart.RemoveFromCart(userID, req)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Error("Remove from cart failed", zap.String("userId", userID), zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to remove from cart"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Removed %d item(s) from your cart.", removed),
		"removed": removed,
		"cart":    cart,
	})
}

// ClearCartHandler handles DELETE /api/cart/clear.
func (h *BookingHandler) ClearCartHandler(c *gin.Context) {
	userID := c.GetString("userID")
	cart, removed, err := h.Cart.ClearCart(userID)
	if err != nil {
		h.Logger.Error("Clear cart failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Cleared %d item(s) from your cart.", removed),
		"cleared": removed,
		"cart":    cart,
	})
}
