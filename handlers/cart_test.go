package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"festivo/models"
	"festivo/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCartService struct {
	cart    *models.Cart
	message string
}

func (s *stubCartService) AddToCart(string, models.ReservationRequest) (*models.Cart, string, error) {
	return s.cart, s.message, nil
}

func (s *stubCartService) RemoveFromCart(string, models.ReservationRequest) (*models.Cart, int, error) {
	return s.cart, 0, nil
}

func (s *stubCartService) ClearCart(string) (*models.Cart, int, error) {
	return s.cart, 0, nil
}

func (s *stubCartService) GetCart(string) (*models.Cart, error) {
	return s.cart, nil
}

func TestAddToCartHandlerSurfacesCalculatedPrice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cart := &models.Cart{
		ID:     "cart-1",
		UserID: "u1",
		Items: []models.CartLineItem{
			{ID: "item-1", ServiceID: "svc-hourly", CalculatedPrice: 150},
		},
		TotalPrice: 150,
	}
	var svc booking.CartService = &stubCartService{cart: cart, message: "Added to cart."}
	h := &BookingHandler{Cart: svc, Logger: zap.NewNop()}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "u1")
	body := `{"serviceId":"svc-hourly","bookingDate":"2026-10-10","startHour":10,"endHour":13}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.AddToCartHandler(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Message         string      `json:"message"`
		CalculatedPrice float64     `json:"calculatedPrice"`
		Cart            models.Cart `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Added to cart.", resp.Message)
	assert.Equal(t, 150.0, resp.CalculatedPrice)
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, resp.Cart.Items[0].CalculatedPrice, resp.CalculatedPrice)
}
