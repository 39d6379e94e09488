package models

import "time"

// Booking statuses.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a confirmed reservation record, written when checkout drains a
// cart line item into the service's slot ledger.
type Booking struct {
	ID              string      `bson:"id" json:"id"`
	UserID          string      `bson:"userId" json:"userId"`
	ServiceID       string      `bson:"serviceId" json:"serviceId"`
	ServiceName     string      `bson:"serviceName" json:"serviceName"`
	BookingDate     Date        `bson:"bookingDate" json:"bookingDate"`
	StartHour       *float64    `bson:"startHour,omitempty" json:"startHour,omitempty"`
	EndHour         *float64    `bson:"endHour,omitempty" json:"endHour,omitempty"`
	People          *int        `bson:"numberOfPeople,omitempty" json:"numberOfPeople,omitempty"`
	FullVenue       bool        `bson:"isFullVenueBooking,omitempty" json:"isFullVenueBooking,omitempty"`
	BookingType     BookingType `bson:"bookingType" json:"bookingType"`
	TotalPrice      float64     `bson:"totalPrice" json:"totalPrice"`
	Status          string      `bson:"status" json:"status"`
	PaymentIntentID string      `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time   `bson:"createdAt" json:"createdAt"`
}

// CheckoutResult is returned when a cart is drained into confirmed bookings.
type CheckoutResult struct {
	Bookings            []Booking `json:"bookings"`
	TotalPrice          float64   `json:"totalPrice"`
	PaymentIntentID     string    `json:"paymentIntentId,omitempty"`
	PaymentClientSecret string    `json:"paymentClientSecret,omitempty"`
}
