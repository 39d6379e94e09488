package booking

import (
	"fmt"

	"festivo/models"
)

// checkCapacity compares the requested headcount with the remaining spots for
// the date. A missing or non-positive capacity ceiling means unlimited.
func checkCapacity(cons models.ResourceConstraints, ledger *models.SlotLedger, req models.ReservationRequest) (models.AvailabilityResult, error) {
	if req.People == nil {
		return models.AvailabilityResult{}, NewInvalidRequestError("numberOfPeople is required for capacity bookings")
	}
	people := *req.People
	if people <= 0 {
		return models.AvailabilityResult{}, NewInvalidRequestError("numberOfPeople must be greater than zero")
	}

	if cons.MaxCapacity <= 0 {
		return available(fmt.Sprintf("%d spots are available on %s.", people, req.Date)), nil
	}

	booked := 0
	if day := ledger.Day(req.Date); day != nil {
		booked = day.BookedCount
	}
	remaining := cons.MaxCapacity - booked
	if people > remaining {
		if remaining <= 0 {
			return unavailable(fmt.Sprintf("%s is fully booked.", req.Date), models.ConflictCapacityFull), nil
		}
		return unavailable(
			fmt.Sprintf("Only %d spots are available on %s.", remaining, req.Date),
			models.ConflictCapacityFull,
		), nil
	}
	return available(fmt.Sprintf("%d spots confirmed for %s; %d will remain.", people, req.Date, remaining-people)), nil
}

// checkMixed dispatches a hybrid service: full-venue requests exclude and are
// excluded by every other entry on the date; otherwise a headcount delegates
// to the capacity check and hour bounds to the hourly check, mirroring the
// pricing precedence.
func checkMixed(svc *models.Service, ledger *models.SlotLedger, req models.ReservationRequest) (models.AvailabilityResult, error) {
	day := ledger.Day(req.Date)

	if req.FullVenue {
		if !svc.Constraints.AllowFullVenueBooking {
			return unavailable("This venue does not offer full-venue bookings.", models.ConflictVenueDisallowed), nil
		}
		if day != nil && day.HasEntries() {
			return unavailable(
				fmt.Sprintf("The full venue cannot be booked: there are existing bookings on %s.", req.Date),
				models.ConflictDateBooked,
			), nil
		}
		return available(fmt.Sprintf("The full venue is available on %s.", req.Date)), nil
	}

	if day != nil && day.FullDay {
		return unavailable(
			fmt.Sprintf("%s is reserved by a full-venue booking.", req.Date),
			models.ConflictDateBooked,
		), nil
	}

	switch {
	case req.People != nil:
		return checkCapacity(svc.Constraints, ledger, req)
	case req.HasHours():
		return checkHourly(svc.Constraints, ledger, req)
	default:
		return models.AvailabilityResult{}, NewInvalidRequestError(
			"specify startHour/endHour, numberOfPeople, or isFullVenueBooking for this service")
	}
}
