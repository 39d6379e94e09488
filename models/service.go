package models

import "time"

// BookingType determines which availability and pricing model applies to a service.
type BookingType string

const (
	// BookingTypeDaily reserves whole calendar days.
	BookingTypeDaily BookingType = "daily"
	// BookingTypeHourly reserves half-open hour windows within a day.
	BookingTypeHourly BookingType = "hourly"
	// BookingTypeCapacity reserves headcount against a per-date capacity ceiling.
	BookingTypeCapacity BookingType = "capacity"
	// BookingTypeMixed supports hourly, headcount and full-venue reservations.
	BookingTypeMixed BookingType = "mixed"
	// BookingTypeDisplay is an informational listing; reservations go through an
	// external booking link, never through this engine.
	BookingTypeDisplay BookingType = "display"
)

func (bt BookingType) Valid() bool {
	switch bt {
	case BookingTypeDaily, BookingTypeHourly, BookingTypeCapacity, BookingTypeMixed, BookingTypeDisplay:
		return true
	}
	return false
}

// PricingTable holds the vendor's rates. Fields that do not apply to the
// service's booking type are left at zero; pricing falls back to BasePrice.
type PricingTable struct {
	BasePrice float64 `bson:"basePrice" json:"basePrice"`
	PerHour   float64 `bson:"perHour,omitempty" json:"perHour,omitempty"`
	PerDay    float64 `bson:"perDay,omitempty" json:"perDay,omitempty"`
	PerPerson float64 `bson:"perPerson,omitempty" json:"perPerson,omitempty"`
	FullVenue float64 `bson:"fullVenue,omitempty" json:"fullVenue,omitempty"`
}

// ResourceConstraints are the vendor-set limits applied by the availability resolver.
type ResourceConstraints struct {
	MinBookingHours       int   `bson:"minBookingHours,omitempty" json:"minBookingHours,omitempty"`
	MaxBookingHours       int   `bson:"maxBookingHours,omitempty" json:"maxBookingHours,omitempty"`
	AvailableHours        []int `bson:"availableHours,omitempty" json:"availableHours,omitempty"` // integer hours 0-23; empty means any
	CleanupTimeMinutes    int   `bson:"cleanupTimeMinutes,omitempty" json:"cleanupTimeMinutes,omitempty"`
	MaxCapacity           int   `bson:"maxCapacity,omitempty" json:"maxCapacity,omitempty"` // 0 means unlimited
	AllowFullVenueBooking bool  `bson:"allowFullVenueBooking" json:"allowFullVenueBooking"`
}

// HourAllowed reports whether the given integer hour may be booked.
func (rc ResourceConstraints) HourAllowed(hour int) bool {
	if len(rc.AvailableHours) == 0 {
		return true
	}
	for _, h := range rc.AvailableHours {
		if h == hour {
			return true
		}
	}
	return false
}

// Service is a vendor's bookable listing: the resource model plus its occupancy ledger.
type Service struct {
	ID                 string              `bson:"id" json:"id"`
	VendorID           string              `bson:"vendorId" json:"vendorId"`
	Name               string              `bson:"name" json:"name"`
	Description        string              `bson:"description,omitempty" json:"description,omitempty"`
	Category           string              `bson:"category,omitempty" json:"category,omitempty"`
	BookingType        BookingType         `bson:"bookingType" json:"bookingType"`
	Pricing            PricingTable        `bson:"pricing" json:"pricing"`
	Constraints        ResourceConstraints `bson:"constraints" json:"constraints"`
	ExternalBookingURL string              `bson:"externalBookingUrl,omitempty" json:"externalBookingUrl,omitempty"`
	Currency           string              `bson:"currency,omitempty" json:"currency,omitempty"`
	Ledger             SlotLedger          `bson:"slotLedger" json:"-"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}
