package booking

import "festivo/models"

// CalculatePrice computes the cost of one reservation. Pure function, never
// fails: unset rates fall back to the base price, and the base price to zero.
// Mixed pricing follows the same precedence as the availability dispatch
// (full venue, then headcount, then hours) so a request is always priced
// under the model it was validated against.
func CalculatePrice(svc *models.Service, req models.ReservationRequest) float64 {
	p := svc.Pricing
	switch svc.BookingType {
	case models.BookingTypeDaily:
		return orBase(p.PerDay, p.BasePrice)
	case models.BookingTypeHourly:
		if req.HasHours() {
			return p.PerHour * req.DurationHours()
		}
		return p.BasePrice
	case models.BookingTypeCapacity:
		if req.People != nil {
			return p.PerPerson * float64(*req.People)
		}
		return p.BasePrice
	case models.BookingTypeMixed:
		switch {
		case req.FullVenue:
			return orBase(p.FullVenue, p.BasePrice)
		case req.People != nil:
			return p.PerPerson * float64(*req.People)
		case req.HasHours():
			return p.PerHour * req.DurationHours()
		default:
			return p.BasePrice
		}
	default:
		return 0
	}
}

func orBase(rate, base float64) float64 {
	if rate > 0 {
		return rate
	}
	return base
}
