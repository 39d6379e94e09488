package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "festivo/database/repository/booking"
	catalogRepo "festivo/database/repository/catalog"
	"festivo/models"
)

// fakeCatalog is an in-memory CatalogRepository with the same conditional
// write semantics as the Mongo implementation.
type fakeCatalog struct {
	services map[string]*models.Service
	ledgers  map[string]*models.SlotLedger

	// failCommit forces commit failures per service, bypassing validation.
	failCommit map[string]error
}

func newFakeCatalog(services ...*models.Service) *fakeCatalog {
	f := &fakeCatalog{
		services: make(map[string]*models.Service),
		ledgers:  make(map[string]*models.SlotLedger),
	}
	for _, svc := range services {
		f.services[svc.ID] = svc
		f.ledgers[svc.ID] = &models.SlotLedger{}
	}
	return f
}

func (f *fakeCatalog) Create(svc *models.Service) error {
	f.services[svc.ID] = svc
	f.ledgers[svc.ID] = &models.SlotLedger{}
	return nil
}

func (f *fakeCatalog) GetByID(id string) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeCatalog) GetAll() ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		out = append(out, *svc)
	}
	return out, nil
}

func (f *fakeCatalog) GetByVendor(vendorID string) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.VendorID == vendorID {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Update(svc *models.Service) error {
	if _, ok := f.services[svc.ID]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeCatalog) Delete(id string) error {
	delete(f.services, id)
	delete(f.ledgers, id)
	return nil
}

func (f *fakeCatalog) GetLedger(serviceID string) (*models.SlotLedger, error) {
	ledger, ok := f.ledgers[serviceID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return ledger, nil
}

func (f *fakeCatalog) day(serviceID string, date models.Date) *models.DayLedger {
	ledger := f.ledgers[serviceID]
	if d := ledger.Day(date); d != nil {
		return d
	}
	ledger.Days = append(ledger.Days, models.DayLedger{Date: date})
	return &ledger.Days[len(ledger.Days)-1]
}

func (f *fakeCatalog) CommitFullDay(serviceID string, date models.Date, exclusive bool) error {
	if err := f.failCommit[serviceID]; err != nil {
		return err
	}
	if _, ok := f.ledgers[serviceID]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	d := f.day(serviceID, date)
	if d.FullDay || (exclusive && d.HasEntries()) {
		return catalogRepo.ErrLedgerConflict
	}
	d.FullDay = true
	return nil
}

func (f *fakeCatalog) CommitHourly(serviceID string, date models.Date, iv models.HourInterval) error {
	if err := f.failCommit[serviceID]; err != nil {
		return err
	}
	if _, ok := f.ledgers[serviceID]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	d := f.day(serviceID, date)
	if d.FullDay {
		return catalogRepo.ErrLedgerConflict
	}
	for _, existing := range d.Intervals {
		if iv.Overlaps(existing) {
			return catalogRepo.ErrLedgerConflict
		}
	}
	d.Intervals = append(d.Intervals, iv)
	return nil
}

func (f *fakeCatalog) CommitCapacity(serviceID string, date models.Date, people, maxCapacity int) error {
	if err := f.failCommit[serviceID]; err != nil {
		return err
	}
	if _, ok := f.ledgers[serviceID]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	d := f.day(serviceID, date)
	if d.FullDay {
		return catalogRepo.ErrLedgerConflict
	}
	if maxCapacity > 0 && d.BookedCount+people > maxCapacity {
		return catalogRepo.ErrLedgerConflict
	}
	d.BookedCount += people
	return nil
}

func (f *fakeCatalog) ReleaseBooking(serviceID string, booking *models.Booking) error {
	ledger, ok := f.ledgers[serviceID]
	if !ok {
		return catalogRepo.ErrServiceNotFound
	}
	d := ledger.Day(booking.BookingDate)
	if d == nil {
		return nil
	}
	switch {
	case booking.FullVenue || booking.BookingType == models.BookingTypeDaily:
		d.FullDay = false
	case booking.StartHour != nil && booking.EndHour != nil:
		kept := d.Intervals[:0]
		for _, iv := range d.Intervals {
			if iv.StartHour == *booking.StartHour && iv.EndHour == *booking.EndHour {
				continue
			}
			kept = append(kept, iv)
		}
		d.Intervals = kept
	case booking.People != nil:
		d.BookedCount -= *booking.People
		if d.BookedCount < 0 {
			d.BookedCount = 0
		}
	}
	return nil
}

// fakeCartRepo keeps carts in a map keyed by user.
type fakeCartRepo struct {
	carts map[string]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*models.Cart)}
}

func (f *fakeCartRepo) GetByUser(userID string) (*models.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return nil, nil
	}
	return cart, nil
}

func (f *fakeCartRepo) Save(cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	f.carts[cart.UserID] = cart
	return nil
}

func (f *fakeCartRepo) Delete(userID string) error {
	delete(f.carts, userID)
	return nil
}

// fakeBookingRepo keeps booking records in memory.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, bookingRepo.ErrBookingNotFound)
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUser(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) SetStatus(id, status string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

// fakeLocker counts acquisitions and can simulate a held lock.
type fakeLocker struct {
	acquired []string
	failWith error
}

func (f *fakeLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.acquired = append(f.acquired, key)
	return func() {}, nil
}

// fakePayments records payment intent requests.
type fakePayments struct {
	amount   float64
	currency string
	err      error
}

func (f *fakePayments) CreatePaymentIntent(userID string, amount float64, currency string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	f.amount = amount
	f.currency = currency
	return "pi_test_123", "pi_test_123_secret", nil
}
