package booking

import (
	"testing"

	"festivo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (*DefaultCartService, *fakeCatalog) {
	t.Helper()
	catalog := newFakeCatalog(
		hourlyService(30),
		capacityService(100),
		mixedService(),
		&models.Service{
			ID:          "svc-daily",
			Name:        "Wedding Garden",
			BookingType: models.BookingTypeDaily,
			Pricing:     models.PricingTable{PerDay: 800},
		},
		&models.Service{
			ID:                 "svc-display",
			Name:               "Partner Venue",
			BookingType:        models.BookingTypeDisplay,
			ExternalBookingURL: "https://partner.example.com/book",
		},
	)
	return &DefaultCartService{Catalog: catalog, Carts: newFakeCartRepo()}, catalog
}

func assertTotalInvariant(t *testing.T, cart *models.Cart) {
	t.Helper()
	sum := 0.0
	for _, it := range cart.Items {
		sum += it.CalculatedPrice
	}
	assert.Equal(t, sum, cart.TotalPrice)
}

func TestAddToCartPricesAndTotals(t *testing.T) {
	svc, _ := newCartFixture(t)

	cart, msg, err := svc.AddToCart("u1", hourlyReq(10, 13))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 150.0, cart.Items[0].CalculatedPrice)
	assert.Contains(t, msg, "Conference Hall")
	assert.Contains(t, msg, "10:00")
	assertTotalInvariant(t, cart)

	cart, _, err = svc.AddToCart("u1", capacityReq(4))
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assertTotalInvariant(t, cart)
}

func TestAddToCartRejectsUnavailableSlot(t *testing.T) {
	svc, catalog := newCartFixture(t)
	catalog.ledgers["svc-daily"] = &models.SlotLedger{
		Days: []models.DayLedger{{Date: testDate, FullDay: true}},
	}

	_, _, err := svc.AddToCart("u1", models.ReservationRequest{
		ServiceID: "svc-daily", Date: testDate,
	})
	require.Error(t, err)
	assert.Equal(t, CodeConflict, ErrorCode(err))
}

func TestAddToCartRejectsDuplicateSlot(t *testing.T) {
	svc, _ := newCartFixture(t)

	_, _, err := svc.AddToCart("u1", hourlyReq(10, 12))
	require.NoError(t, err)

	_, _, err = svc.AddToCart("u1", hourlyReq(10, 12))
	require.Error(t, err)
	assert.Equal(t, CodeConflict, ErrorCode(err))
}

func TestAddToCartAllowsDistinctRangesSameDate(t *testing.T) {
	svc, _ := newCartFixture(t)

	_, _, err := svc.AddToCart("u1", hourlyReq(10, 12))
	require.NoError(t, err)
	cart, _, err := svc.AddToCart("u1", hourlyReq(14, 16))
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assertTotalInvariant(t, cart)
}

func TestAddToCartDisplayListingIsUnsupported(t *testing.T) {
	svc, _ := newCartFixture(t)
	_, _, err := svc.AddToCart("u1", models.ReservationRequest{
		ServiceID: "svc-display", Date: testDate,
	})
	require.Error(t, err)
	assert.Equal(t, CodeUnsupported, ErrorCode(err))
	assert.Contains(t, err.Error(), "https://partner.example.com/book")
}

func TestAddToCartUnknownServiceIsNotFound(t *testing.T) {
	svc, _ := newCartFixture(t)
	_, _, err := svc.AddToCart("u1", models.ReservationRequest{
		ServiceID: "missing", Date: testDate,
	})
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestAddToCartMissingFieldsIsInvalidRequest(t *testing.T) {
	svc, _ := newCartFixture(t)
	_, _, err := svc.AddToCart("u1", models.ReservationRequest{ServiceID: "svc-hourly"})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, ErrorCode(err))
}

func TestRemoveFromCartByHourRange(t *testing.T) {
	svc, _ := newCartFixture(t)
	_, _, err := svc.AddToCart("u1", hourlyReq(10, 12))
	require.NoError(t, err)
	_, _, err = svc.AddToCart("u1", hourlyReq(14, 16))
	require.NoError(t, err)

	cart, removed, err := svc.RemoveFromCart("u1", hourlyReq(10, 12))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 14.0, *cart.Items[0].StartHour)
	assertTotalInvariant(t, cart)
}

func TestRemoveFromCartByDateRemovesAllMatches(t *testing.T) {
	svc, _ := newCartFixture(t)
	_, _, err := svc.AddToCart("u1", hourlyReq(10, 12))
	require.NoError(t, err)
	_, _, err = svc.AddToCart("u1", hourlyReq(14, 16))
	require.NoError(t, err)

	cart, removed, err := svc.RemoveFromCart("u1", models.ReservationRequest{
		ServiceID: "svc-hourly", Date: testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestRemoveFromCartNoMatchIsNotFound(t *testing.T) {
	svc, _ := newCartFixture(t)
	_, _, err := svc.AddToCart("u1", hourlyReq(10, 12))
	require.NoError(t, err)

	_, _, err = svc.RemoveFromCart("u1", hourlyReq(18, 20))
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestRemoveFromEmptyCartIsNotFound(t *testing.T) {
	svc, _ := newCartFixture(t)
	_, _, err := svc.RemoveFromCart("u1", hourlyReq(10, 12))
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestClearCartReportsRemovedCount(t *testing.T) {
	svc, _ := newCartFixture(t)
	_, _, err := svc.AddToCart("u1", hourlyReq(10, 12))
	require.NoError(t, err)
	_, _, err = svc.AddToCart("u1", capacityReq(4))
	require.NoError(t, err)

	cart, cleared, err := svc.ClearCart("u1")
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)

	// Clearing again is a no-op, not an error.
	_, cleared, err = svc.ClearCart("u1")
	require.NoError(t, err)
	assert.Equal(t, 0, cleared)
}

func TestGetCartReturnsEmptyShapeForNewUser(t *testing.T) {
	svc, _ := newCartFixture(t)
	cart, err := svc.GetCart("fresh-user")
	require.NoError(t, err)
	assert.Equal(t, "fresh-user", cart.UserID)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc, _ := newCartFixture(t)
	_, _, err := svc.AddToCart("u1", hourlyReq(10, 12))
	require.NoError(t, err)

	cart, err := svc.GetCart("u2")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
