package handlers

import (
	"net/http"

	"festivo/models"
	"festivo/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler bundles the reservation endpoints: availability checks, the
// cart protocol, and checkout.
type BookingHandler struct {
	Availability booking.AvailabilityChecker
	Cart         booking.CartService
	Checkout     booking.CheckoutService
	Logger       *zap.Logger
}

// statusForError maps a booking error code to its HTTP status. Unclassified
// errors are treated as internal.
func statusForError(err error) int {
	switch booking.ErrorCode(err) {
	case booking.CodeInvalidRequest:
		return http.StatusBadRequest
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeConflict:
		return http.StatusConflict
	case booking.CodeUnsupported:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// bindReservationRequest binds and normalizes a reservation payload. The
// booking date is re-parsed so both plain dates and RFC3339 timestamps land as
// the same calendar day.
func bindReservationRequest(c *gin.Context) (models.ReservationRequest, bool) {
	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return req, false
	}
	if req.Date != "" {
		normalized, err := models.ParseDate(string(req.Date))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookingDate: " + err.Error()})
			return req, false
		}
		req.Date = normalized
	}
	return req, true
}

// CheckAvailabilityHandler handles POST /api/booking/check.
func (h *BookingHandler) CheckAvailabilityHandler(c *gin.Context) {
	req, ok := bindReservationRequest(c)
	if !ok {
		return
	}

	result, err := h.Availability.Check(req)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Error("Availability check failed", zap.String("serviceId", req.ServiceID), zap.Error(err))
			c.JSON(status, gin.H{"error": "availability check failed"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
