package models

// ReservationMode is the resolved shape of a reservation request. Exactly one
// mode applies to a request; resolving it up front keeps the availability and
// pricing dispatch exhaustive instead of branching on loose optional fields.
type ReservationMode string

const (
	ModeFullVenue ReservationMode = "fullVenue"
	ModeHeadcount ReservationMode = "headcount"
	ModeHourly    ReservationMode = "hourly"
	ModeWholeDay  ReservationMode = "wholeDay"
)

// ReservationRequest is one requested reservation: a service, a normalized
// calendar date, and exactly one of hour bounds, a headcount, or the
// full-venue flag depending on the service's booking type.
type ReservationRequest struct {
	ServiceID string   `json:"serviceId"`
	Date      Date     `json:"bookingDate"`
	StartHour *float64 `json:"startHour,omitempty"`
	EndHour   *float64 `json:"endHour,omitempty"`
	People    *int     `json:"numberOfPeople,omitempty"`
	FullVenue bool     `json:"isFullVenueBooking,omitempty"`
}

// HasHours reports whether both hour bounds were supplied.
func (r ReservationRequest) HasHours() bool {
	return r.StartHour != nil && r.EndHour != nil
}

// DurationHours returns the requested duration; zero when hours are absent.
func (r ReservationRequest) DurationHours() float64 {
	if !r.HasHours() {
		return 0
	}
	return *r.EndHour - *r.StartHour
}

// Mode resolves the request's reservation mode with full-venue taking
// precedence over headcount, and headcount over hours. The empty string means
// the caller supplied no usable mode.
func (r ReservationRequest) Mode() ReservationMode {
	switch {
	case r.FullVenue:
		return ModeFullVenue
	case r.People != nil:
		return ModeHeadcount
	case r.HasHours():
		return ModeHourly
	default:
		return ""
	}
}

// ConflictReason classifies why a reservation was refused.
type ConflictReason string

const (
	ConflictDateBooked      ConflictReason = "date_booked"
	ConflictOverlap         ConflictReason = "overlap"
	ConflictCleanupTime     ConflictReason = "cleanup_time"
	ConflictCapacityFull    ConflictReason = "capacity_full"
	ConflictInvalidDuration ConflictReason = "invalid_duration"
	ConflictOutsideHours    ConflictReason = "outside_hours"
	ConflictDisplayOnly     ConflictReason = "display_only"
	ConflictVenueDisallowed ConflictReason = "full_venue_unavailable"
)

// TimeRange is a suggested alternative window. Hours are fractional because a
// cleanup buffer can push the next valid start past the hour mark.
type TimeRange struct {
	StartHour float64 `json:"startHour"`
	EndHour   float64 `json:"endHour"`
}

// AvailabilityResult is the resolver's answer. A negative answer is a normal
// result carrying a user-facing explanation, never an error.
type AvailabilityResult struct {
	Available  bool           `json:"isAvailable"`
	Message    string         `json:"message"`
	Suggestion *TimeRange     `json:"suggestedTime,omitempty"`
	Reason     ConflictReason `json:"conflictReason,omitempty"`
}
