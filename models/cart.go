package models

import "time"

// CartLineItem is one priced reservation held in a cart. Items are immutable
// once added; date normalization happens before the item is built. Two items
// for the same service and date with different hour ranges are distinct.
type CartLineItem struct {
	ID              string    `bson:"id" json:"id"`
	ServiceID       string    `bson:"serviceId" json:"serviceId"`
	ServiceName     string    `bson:"serviceName" json:"serviceName"`
	BookingDate     Date      `bson:"bookingDate" json:"bookingDate"`
	StartHour       *float64  `bson:"startHour,omitempty" json:"startHour,omitempty"`
	EndHour         *float64  `bson:"endHour,omitempty" json:"endHour,omitempty"`
	People          *int      `bson:"numberOfPeople,omitempty" json:"numberOfPeople,omitempty"`
	FullVenue       bool      `bson:"isFullVenueBooking,omitempty" json:"isFullVenueBooking,omitempty"`
	CalculatedPrice float64   `bson:"calculatedPrice" json:"calculatedPrice"`
	AddedAt         time.Time `bson:"addedAt" json:"addedAt"`
}

// SameSlot reports whether the item occupies the uniqueness key
// (serviceId, bookingDate, startHour, endHour).
func (it CartLineItem) SameSlot(serviceID string, date Date, start, end *float64) bool {
	return it.ServiceID == serviceID &&
		it.BookingDate == date &&
		hourEq(it.StartHour, start) &&
		hourEq(it.EndHour, end)
}

func hourEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Cart is a user's pending reservations. TotalPrice always equals the sum of
// the items' calculated prices; every mutation recomputes it before saving.
type Cart struct {
	ID         string         `bson:"id" json:"id"`
	UserID     string         `bson:"userId" json:"userId"`
	Items      []CartLineItem `bson:"items" json:"items"`
	TotalPrice float64        `bson:"totalPrice" json:"totalPrice"`
	UpdatedAt  time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// RecomputeTotal restores the total==sum-of-items invariant.
func (c *Cart) RecomputeTotal() {
	total := 0.0
	for _, it := range c.Items {
		total += it.CalculatedPrice
	}
	c.TotalPrice = total
}

// EmptyCart is the well-formed shape returned when a user has no cart yet.
func EmptyCart(userID string) *Cart {
	return &Cart{
		UserID:     userID,
		Items:      []CartLineItem{},
		TotalPrice: 0,
	}
}
