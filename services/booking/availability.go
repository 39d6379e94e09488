package booking

import (
	"fmt"
	"math"

	"festivo/models"
)

// CheckAvailability decides whether the requested reservation can be made
// against the given ledger snapshot. A negative answer is a normal result
// carrying a user-facing explanation; only malformed requests or an
// unrecognized booking type return an error. The function is pure and safe
// for arbitrary parallelism.
func CheckAvailability(svc *models.Service, ledger *models.SlotLedger, req models.ReservationRequest) (models.AvailabilityResult, error) {
	switch svc.BookingType {
	case models.BookingTypeDisplay:
		msg := "This listing cannot be booked here."
		if svc.ExternalBookingURL != "" {
			msg = fmt.Sprintf("This listing cannot be booked here. Please book via %s.", svc.ExternalBookingURL)
		}
		return unavailable(msg, models.ConflictDisplayOnly), nil
	case models.BookingTypeDaily:
		return checkDaily(ledger, req), nil
	case models.BookingTypeHourly:
		return checkHourly(svc.Constraints, ledger, req)
	case models.BookingTypeCapacity:
		return checkCapacity(svc.Constraints, ledger, req)
	case models.BookingTypeMixed:
		return checkMixed(svc, ledger, req)
	default:
		return models.AvailabilityResult{}, fmt.Errorf("unrecognized booking type %q for service %s", svc.BookingType, svc.ID)
	}
}

// checkDaily consults only the full-day flag: hourly or capacity data on the
// same date never blocks a daily service.
func checkDaily(ledger *models.SlotLedger, req models.ReservationRequest) models.AvailabilityResult {
	if day := ledger.Day(req.Date); day != nil && day.FullDay {
		return unavailable(fmt.Sprintf("%s is already fully booked.", req.Date), models.ConflictDateBooked)
	}
	return available(fmt.Sprintf("%s is available for a full-day booking.", req.Date))
}

func available(msg string) models.AvailabilityResult {
	return models.AvailabilityResult{Available: true, Message: msg}
}

func unavailable(msg string, reason models.ConflictReason) models.AvailabilityResult {
	return models.AvailabilityResult{Available: false, Message: msg, Reason: reason}
}

// formatHour renders a fractional hour as HH:MM ("12.5" -> "12:30").
func formatHour(h float64) string {
	hh := int(h)
	mm := int(math.Round((h - float64(hh)) * 60))
	if mm == 60 {
		hh++
		mm = 0
	}
	return fmt.Sprintf("%02d:%02d", hh, mm)
}
