package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler handles POST /api/cart/checkout. The whole cart drains in
// one pass; a slot lost to a concurrent checkout surfaces as a conflict and
// the cart is left intact for the user to amend.
func (h *BookingHandler) CheckoutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	result, err := h.Checkout.Checkout(userID)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Error("Checkout failed", zap.String("userId", userID), zap.Error(err))
			c.JSON(status, gin.H{"error": "checkout failed"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListBookingsHandler handles GET /api/bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	bookings, err := h.Checkout.ListBookings(userID)
	if err != nil {
		h.Logger.Error("Failed to list bookings", zap.String("userId", userID), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBookingHandler handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")
	bookingID := c.Param("id")
	if err := h.Checkout.CancelBooking(userID, bookingID); err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Error("Cancel booking failed", zap.String("bookingId", bookingID), zap.Error(err))
			c.JSON(status, gin.H{"error": "failed to cancel booking"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
