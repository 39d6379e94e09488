package models

// HourInterval is a half-open [StartHour, EndHour) window of confirmed
// occupancy. Hours are fractional: cleanup buffers can place valid bookings
// off the hour mark (10.5 is 10:30).
type HourInterval struct {
	StartHour float64 `bson:"startHour" json:"startHour"`
	EndHour   float64 `bson:"endHour" json:"endHour"`
}

// Overlaps reports whether two intervals intersect. Touching endpoints
// (one booking ending exactly when another starts) do not overlap.
func (iv HourInterval) Overlaps(other HourInterval) bool {
	return iv.StartHour < other.EndHour && iv.EndHour > other.StartHour
}

// DayLedger is the single occupancy record for one calendar date. A full-day
// reservation excludes hourly intervals and headcount on the same date; hourly
// intervals and headcount may coexist under the mixed booking model.
type DayLedger struct {
	Date        Date           `bson:"date" json:"date"`
	FullDay     bool           `bson:"fullDay" json:"fullDay"`
	Intervals   []HourInterval `bson:"intervals" json:"intervals"`
	BookedCount int            `bson:"bookedCount" json:"bookedCount"`
}

// HasEntries reports whether any reservation of any kind exists for the date.
func (d DayLedger) HasEntries() bool {
	return d.FullDay || len(d.Intervals) > 0 || d.BookedCount > 0
}

// SlotLedger is a service's confirmed occupancy, one record per reserved date.
// It is mutated only when a checkout drains a cart or a booking is cancelled;
// availability checks read it as a snapshot.
type SlotLedger struct {
	Days []DayLedger `bson:"days" json:"days"`
}

// Day returns the ledger record for the given date, or nil when the date is
// untouched.
func (l *SlotLedger) Day(date Date) *DayLedger {
	for i := range l.Days {
		if l.Days[i].Date == date {
			return &l.Days[i]
		}
	}
	return nil
}
