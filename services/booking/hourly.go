package booking

import (
	"fmt"
	"math"
	"strings"

	"festivo/models"
)

// checkHourly validates the requested window against the service constraints
// and then walks every confirmed interval on the same date. Boundary handling:
// a booking starting exactly when another ends is adjacency, not a conflict,
// and needs no cleanup buffer. A start strictly inside the buffer window after
// an existing booking is refused with a suggested alternative; an end that
// would eat into the buffer before a following booking is refused with the
// latest permissible end.
func checkHourly(cons models.ResourceConstraints, ledger *models.SlotLedger, req models.ReservationRequest) (models.AvailabilityResult, error) {
	if !req.HasHours() {
		return models.AvailabilityResult{}, NewInvalidRequestError("startHour and endHour are required for hourly bookings")
	}
	start, end := *req.StartHour, *req.EndHour
	if start < 0 || end > 24 || start >= end {
		return models.AvailabilityResult{}, NewInvalidRequestError("invalid hour range %s-%s", formatHour(start), formatHour(end))
	}

	duration := end - start
	if cons.MinBookingHours > 0 && duration < float64(cons.MinBookingHours) {
		return unavailable(
			fmt.Sprintf("Bookings must be at least %d hours; requested %s.", cons.MinBookingHours, formatDuration(duration)),
			models.ConflictInvalidDuration,
		), nil
	}
	if cons.MaxBookingHours > 0 && duration > float64(cons.MaxBookingHours) {
		return unavailable(
			fmt.Sprintf("Bookings may be at most %d hours; requested %s.", cons.MaxBookingHours, formatDuration(duration)),
			models.ConflictInvalidDuration,
		), nil
	}

	if len(cons.AvailableHours) > 0 {
		if invalid := disallowedHours(cons, start, end); len(invalid) > 0 {
			return unavailable(
				fmt.Sprintf("The following hours are outside operating hours: %s.", strings.Join(invalid, ", ")),
				models.ConflictOutsideHours,
			), nil
		}
	}

	day := ledger.Day(req.Date)
	if day == nil {
		return available(hourlyOK(req.Date, start, end)), nil
	}

	buffer := float64(cons.CleanupTimeMinutes) / 60.0
	reqIv := models.HourInterval{StartHour: start, EndHour: end}
	for _, iv := range day.Intervals {
		if reqIv.Overlaps(iv) {
			return unavailable(
				fmt.Sprintf("The requested slot conflicts with an existing booking from %s to %s.", formatHour(iv.StartHour), formatHour(iv.EndHour)),
				models.ConflictOverlap,
			), nil
		}
		if buffer <= 0 {
			continue
		}
		// Start falls inside the cleanup window after an existing booking.
		if start > iv.EndHour && start < iv.EndHour+buffer {
			suggested := iv.EndHour + buffer
			res := unavailable(
				fmt.Sprintf("A %d-minute cleanup follows the booking ending at %s; the next available start is %s.",
					cons.CleanupTimeMinutes, formatHour(iv.EndHour), formatHour(suggested)),
				models.ConflictCleanupTime,
			)
			res.Suggestion = &models.TimeRange{StartHour: suggested, EndHour: suggested + duration}
			return res, nil
		}
		// End would leave the following booking without its cleanup window.
		if end > iv.StartHour-buffer && end <= iv.StartHour {
			return unavailable(
				fmt.Sprintf("The booking starting at %s needs a %d-minute cleanup before it; bookings must end by %s.",
					formatHour(iv.StartHour), cons.CleanupTimeMinutes, formatHour(iv.StartHour-buffer)),
				models.ConflictCleanupTime,
			), nil
		}
	}
	return available(hourlyOK(req.Date, start, end)), nil
}

// disallowedHours lists the integer hour blocks the request touches that the
// vendor has not opened, formatted for the rejection message.
func disallowedHours(cons models.ResourceConstraints, start, end float64) []string {
	first := int(math.Floor(start))
	last := int(math.Ceil(end)) - 1
	var invalid []string
	for h := first; h <= last; h++ {
		if !cons.HourAllowed(h) {
			invalid = append(invalid, fmt.Sprintf("%02d:00", h))
		}
	}
	return invalid
}

func hourlyOK(date models.Date, start, end float64) string {
	return fmt.Sprintf("%s from %s to %s is available.", date, formatHour(start), formatHour(end))
}

func formatDuration(hours float64) string {
	if hours == math.Trunc(hours) {
		return fmt.Sprintf("%d hours", int(hours))
	}
	return fmt.Sprintf("%.2f hours", hours)
}
