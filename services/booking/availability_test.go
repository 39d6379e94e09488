package booking

import (
	"testing"

	"festivo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

const testDate = models.Date("2026-10-10")

func hourlyService(cleanupMinutes int) *models.Service {
	return &models.Service{
		ID:          "svc-hourly",
		Name:        "Conference Hall",
		BookingType: models.BookingTypeHourly,
		Pricing:     models.PricingTable{PerHour: 50},
		Constraints: models.ResourceConstraints{CleanupTimeMinutes: cleanupMinutes},
	}
}

func ledgerWithIntervals(date models.Date, ivs ...models.HourInterval) *models.SlotLedger {
	return &models.SlotLedger{Days: []models.DayLedger{{Date: date, Intervals: ivs}}}
}

func hourlyReq(start, end float64) models.ReservationRequest {
	return models.ReservationRequest{
		ServiceID: "svc-hourly",
		Date:      testDate,
		StartHour: fptr(start),
		EndHour:   fptr(end),
	}
}

func TestHourlyAdjacentBookingIsAvailable(t *testing.T) {
	svc := hourlyService(30)
	ledger := ledgerWithIntervals(testDate, models.HourInterval{StartHour: 10, EndHour: 12})

	// Starting exactly when the previous booking ends is adjacency.
	res, err := CheckAvailability(svc, ledger, hourlyReq(12, 13))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestHourlyStartInsideCleanupWindow(t *testing.T) {
	svc := hourlyService(30)
	ledger := ledgerWithIntervals(testDate, models.HourInterval{StartHour: 10, EndHour: 12})

	res, err := CheckAvailability(svc, ledger, hourlyReq(12.25, 13.25))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictCleanupTime, res.Reason)
	require.NotNil(t, res.Suggestion)
	assert.Equal(t, 12.5, res.Suggestion.StartHour)
	assert.Equal(t, 13.5, res.Suggestion.EndHour)
	assert.Contains(t, res.Message, "12:30")
}

func TestHourlyOverlapHasNoSuggestion(t *testing.T) {
	svc := hourlyService(30)
	ledger := ledgerWithIntervals(testDate, models.HourInterval{StartHour: 10, EndHour: 12})

	res, err := CheckAvailability(svc, ledger, hourlyReq(11, 13))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictOverlap, res.Reason)
	assert.Nil(t, res.Suggestion)
}

func TestHourlyEndEatsIntoFollowingCleanup(t *testing.T) {
	svc := hourlyService(30)
	ledger := ledgerWithIntervals(testDate, models.HourInterval{StartHour: 14, EndHour: 16})

	// Ending at 14:00 leaves no room for the 30-minute cleanup before the
	// 14:00 booking; the latest permissible end is 13:30.
	res, err := CheckAvailability(svc, ledger, hourlyReq(12, 14))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictCleanupTime, res.Reason)
	assert.Contains(t, res.Message, "13:30")
}

func TestHourlyNoCleanupBufferBooksBackToBack(t *testing.T) {
	svc := hourlyService(0)
	ledger := ledgerWithIntervals(testDate, models.HourInterval{StartHour: 10, EndHour: 12})

	res, err := CheckAvailability(svc, ledger, hourlyReq(12, 14))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestHourlyEmptyDateIsAvailable(t *testing.T) {
	svc := hourlyService(30)
	res, err := CheckAvailability(svc, &models.SlotLedger{}, hourlyReq(9, 11))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestHourlyDurationBounds(t *testing.T) {
	svc := hourlyService(0)
	svc.Constraints.MinBookingHours = 2
	svc.Constraints.MaxBookingHours = 8
	ledger := &models.SlotLedger{}

	res, err := CheckAvailability(svc, ledger, hourlyReq(10, 11))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictInvalidDuration, res.Reason)

	res, err = CheckAvailability(svc, ledger, hourlyReq(8, 18))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictInvalidDuration, res.Reason)

	res, err = CheckAvailability(svc, ledger, hourlyReq(10, 14))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestHourlyOutsideOperatingHours(t *testing.T) {
	svc := hourlyService(0)
	svc.Constraints.AvailableHours = []int{9, 10, 11, 12, 13, 14, 15, 16, 17}
	ledger := &models.SlotLedger{}

	res, err := CheckAvailability(svc, ledger, hourlyReq(17, 19))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictOutsideHours, res.Reason)
	assert.Contains(t, res.Message, "18:00")

	res, err = CheckAvailability(svc, ledger, hourlyReq(9, 12))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestHourlyMissingHoursIsInvalidRequest(t *testing.T) {
	svc := hourlyService(0)
	_, err := CheckAvailability(svc, &models.SlotLedger{}, models.ReservationRequest{
		ServiceID: svc.ID,
		Date:      testDate,
	})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, ErrorCode(err))
}

func TestHourlyInvertedRangeIsInvalidRequest(t *testing.T) {
	svc := hourlyService(0)
	_, err := CheckAvailability(svc, &models.SlotLedger{}, hourlyReq(14, 12))
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, ErrorCode(err))
}

func TestDailyAvailability(t *testing.T) {
	svc := &models.Service{
		ID:          "svc-daily",
		Name:        "Wedding Garden",
		BookingType: models.BookingTypeDaily,
	}
	req := models.ReservationRequest{ServiceID: svc.ID, Date: testDate}

	res, err := CheckAvailability(svc, &models.SlotLedger{}, req)
	require.NoError(t, err)
	assert.True(t, res.Available)

	booked := &models.SlotLedger{Days: []models.DayLedger{{Date: testDate, FullDay: true}}}
	res, err = CheckAvailability(svc, booked, req)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictDateBooked, res.Reason)
}

func capacityService(max int) *models.Service {
	return &models.Service{
		ID:          "svc-cap",
		Name:        "Food Festival",
		BookingType: models.BookingTypeCapacity,
		Constraints: models.ResourceConstraints{MaxCapacity: max},
	}
}

func capacityLedger(booked int) *models.SlotLedger {
	return &models.SlotLedger{Days: []models.DayLedger{{Date: testDate, BookedCount: booked}}}
}

func capacityReq(people int) models.ReservationRequest {
	return models.ReservationRequest{ServiceID: "svc-cap", Date: testDate, People: iptr(people)}
}

func TestCapacityRemainingSpots(t *testing.T) {
	svc := capacityService(100)

	res, err := CheckAvailability(svc, capacityLedger(80), capacityReq(30))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictCapacityFull, res.Reason)
	assert.Contains(t, res.Message, "Only 20 spots")

	res, err = CheckAvailability(svc, capacityLedger(80), capacityReq(20))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCapacityFullyBooked(t *testing.T) {
	svc := capacityService(100)
	res, err := CheckAvailability(svc, capacityLedger(100), capacityReq(1))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictCapacityFull, res.Reason)
	assert.Contains(t, res.Message, "fully booked")
}

func TestCapacityUnlimitedWhenNoCeiling(t *testing.T) {
	svc := capacityService(0)
	res, err := CheckAvailability(svc, capacityLedger(100000), capacityReq(500))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCapacityMissingHeadcountIsInvalidRequest(t *testing.T) {
	svc := capacityService(100)
	_, err := CheckAvailability(svc, &models.SlotLedger{}, models.ReservationRequest{
		ServiceID: svc.ID, Date: testDate,
	})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, ErrorCode(err))

	_, err = CheckAvailability(svc, &models.SlotLedger{}, capacityReq(0))
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, ErrorCode(err))
}

func mixedService() *models.Service {
	return &models.Service{
		ID:          "svc-mixed",
		Name:        "Banquet Hall",
		BookingType: models.BookingTypeMixed,
		Constraints: models.ResourceConstraints{
			MaxCapacity:           200,
			AllowFullVenueBooking: true,
		},
	}
}

func TestMixedFullVenueExcludedByExistingEntries(t *testing.T) {
	svc := mixedService()
	req := models.ReservationRequest{ServiceID: svc.ID, Date: testDate, FullVenue: true}

	res, err := CheckAvailability(svc, &models.SlotLedger{}, req)
	require.NoError(t, err)
	assert.True(t, res.Available)

	withHours := ledgerWithIntervals(testDate, models.HourInterval{StartHour: 10, EndHour: 12})
	res, err = CheckAvailability(svc, withHours, req)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictDateBooked, res.Reason)

	withPeople := capacityLedger(5)
	res, err = CheckAvailability(svc, withPeople, req)
	require.NoError(t, err)
	assert.False(t, res.Available)
}

func TestMixedFullVenueDisallowedByConstraints(t *testing.T) {
	svc := mixedService()
	svc.Constraints.AllowFullVenueBooking = false
	req := models.ReservationRequest{ServiceID: svc.ID, Date: testDate, FullVenue: true}

	res, err := CheckAvailability(svc, &models.SlotLedger{}, req)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictVenueDisallowed, res.Reason)
}

func TestMixedFullVenueBlocksEverythingElse(t *testing.T) {
	svc := mixedService()
	fullDay := &models.SlotLedger{Days: []models.DayLedger{{Date: testDate, FullDay: true}}}

	res, err := CheckAvailability(svc, fullDay, capacityReq(10))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictDateBooked, res.Reason)

	res, err = CheckAvailability(svc, fullDay, hourlyReq(10, 12))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictDateBooked, res.Reason)
}

func TestMixedHourlyAndHeadcountCoexist(t *testing.T) {
	svc := mixedService()
	ledger := &models.SlotLedger{Days: []models.DayLedger{{
		Date:        testDate,
		Intervals:   []models.HourInterval{{StartHour: 10, EndHour: 12}},
		BookedCount: 50,
	}}}

	res, err := CheckAvailability(svc, ledger, capacityReq(20))
	require.NoError(t, err)
	assert.True(t, res.Available)

	res, err = CheckAvailability(svc, ledger, hourlyReq(14, 16))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestMixedWithoutModeIsInvalidRequest(t *testing.T) {
	svc := mixedService()
	_, err := CheckAvailability(svc, &models.SlotLedger{}, models.ReservationRequest{
		ServiceID: svc.ID, Date: testDate,
	})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRequest, ErrorCode(err))
}

func TestDisplayListingsAreNeverBookable(t *testing.T) {
	svc := &models.Service{
		ID:                 "svc-display",
		Name:               "Partner Venue",
		BookingType:        models.BookingTypeDisplay,
		ExternalBookingURL: "https://partner.example.com/book",
	}

	res, err := CheckAvailability(svc, &models.SlotLedger{}, models.ReservationRequest{
		ServiceID: svc.ID, Date: testDate,
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, models.ConflictDisplayOnly, res.Reason)
	assert.Contains(t, res.Message, "https://partner.example.com/book")
}

func TestUnknownBookingTypeIsAnError(t *testing.T) {
	svc := &models.Service{ID: "svc-x", BookingType: models.BookingType("subscription")}
	_, err := CheckAvailability(svc, &models.SlotLedger{}, models.ReservationRequest{
		ServiceID: svc.ID, Date: testDate,
	})
	require.Error(t, err)
}

func TestFormatHour(t *testing.T) {
	assert.Equal(t, "12:00", formatHour(12))
	assert.Equal(t, "12:30", formatHour(12.5))
	assert.Equal(t, "09:15", formatHour(9.25))
	assert.Equal(t, "10:00", formatHour(9.9999))
}
