package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	bookingRepo "festivo/database/repository/booking"
	cartRepo "festivo/database/repository/cart"
	catalogRepo "festivo/database/repository/catalog"
	"festivo/models"
	"festivo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const serviceLockTTL = 30 * time.Second

// ServiceLocker provides per-service mutual exclusion for the
// validate-then-write window at checkout time.
type ServiceLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// PaymentProcessor creates a payment intent for a drained cart.
type PaymentProcessor interface {
	CreatePaymentIntent(userID string, amount float64, currency string) (id, clientSecret string, err error)
}

// ReminderScheduler queues a reminder ahead of a confirmed booking's date.
type ReminderScheduler interface {
	ScheduleReminder(b models.Booking) error
}

// CheckoutService drains a cart into confirmed ledger entries and manages the
// resulting booking records.
type CheckoutService interface {
	Checkout(userID string) (*models.CheckoutResult, error)
	ListBookings(userID string) ([]models.Booking, error)
	CancelBooking(userID, bookingID string) error
}

// DefaultCheckoutEngine implements CheckoutService. Availability was already
// checked when each item entered the cart, but time has passed and another
// cart may have won the slot, so every line item is re-validated against the
// live ledger while holding a per-service advisory lock. Validation and
// commit are interleaved per item so items within the same cart see each
// other's commits; the conditional ledger writes are the second line of
// defense. A lost race is a conflict for this request, never a double
// booking.
type DefaultCheckoutEngine struct {
	Catalog   catalogRepo.CatalogRepository
	Carts     cartRepo.CartRepository
	Bookings  bookingRepo.BookingRepository
	Locks     ServiceLocker
	Payments  PaymentProcessor  // optional
	Reminders ReminderScheduler // optional
	userLocks keyedMutex
}

func (e *DefaultCheckoutEngine) Checkout(userID string) (*models.CheckoutResult, error) {
	unlock := e.userLocks.Lock(userID)
	defer unlock()
	logger := utils.GetLogger()

	cart, err := e.Carts.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, NewInvalidRequestError("your cart is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), serviceLockTTL)
	defer cancel()

	// Acquire the per-service locks in sorted order so two checkouts sharing
	// services cannot deadlock each other.
	for _, serviceID := range distinctServiceIDs(cart.Items) {
		release, err := e.Locks.Acquire(ctx, "service:"+serviceID, serviceLockTTL)
		if err != nil {
			if errors.Is(err, utils.ErrLockHeld) {
				return nil, NewConflictError("another checkout for one of these services is in progress; try again shortly")
			}
			return nil, err
		}
		defer release()
	}

	// Validate and commit one item at a time: each item's availability check
	// reads the ledger after the previous items' commits, so two items in the
	// same cart that conflict only through the cleanup buffer cannot both
	// land. Anything already written is rolled back when a later item fails.
	services := make(map[string]*models.Service, len(cart.Items))
	var committed []models.Booking
	rollback := func() {
		for _, b := range committed {
			if err := e.Catalog.ReleaseBooking(b.ServiceID, &b); err != nil {
				logger.Error("failed to roll back ledger entry",
					zap.String("serviceID", b.ServiceID), zap.Error(err))
			}
		}
	}
	for _, item := range cart.Items {
		svc, err := e.serviceFor(services, item.ServiceID)
		if err != nil {
			rollback()
			return nil, err
		}
		ledger, err := e.Catalog.GetLedger(svc.ID)
		if err != nil {
			rollback()
			return nil, err
		}
		result, err := CheckAvailability(svc, ledger, requestFromItem(item))
		if err != nil {
			rollback()
			return nil, err
		}
		if !result.Available {
			rollback()
			return nil, NewConflictError("%q on %s is no longer available: %s",
				item.ServiceName, item.BookingDate, result.Message)
		}
		if err := e.commitItem(svc, item); err != nil {
			rollback()
			if errors.Is(err, catalogRepo.ErrLedgerConflict) {
				return nil, NewConflictError("%q on %s was booked by someone else during checkout",
					item.ServiceName, item.BookingDate)
			}
			return nil, err
		}
		committed = append(committed, bookingFromItem(userID, svc, item))
	}

	result := &models.CheckoutResult{TotalPrice: cart.TotalPrice}
	if e.Payments != nil {
		id, secret, err := e.Payments.CreatePaymentIntent(userID, cart.TotalPrice, currencyFor(services))
		if err != nil {
			rollback()
			return nil, fmt.Errorf("payment intent creation failed: %w", err)
		}
		result.PaymentIntentID = id
		result.PaymentClientSecret = secret
		for i := range committed {
			committed[i].PaymentIntentID = id
		}
	}

	for _, b := range committed {
		if err := e.Bookings.Create(&b); err != nil {
			// Ledger entry stands; the record write is retried by support
			// tooling, not by undoing a confirmed reservation.
			logger.Error("failed to persist booking record",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		if e.Reminders != nil {
			if err := e.Reminders.ScheduleReminder(b); err != nil {
				logger.Warn("failed to schedule reminder",
					zap.String("bookingID", b.ID), zap.Error(err))
			}
		}
		result.Bookings = append(result.Bookings, b)
	}

	cart.Items = []models.CartLineItem{}
	cart.TotalPrice = 0
	if err := e.Carts.Save(cart); err != nil {
		logger.Error("failed to clear cart after checkout",
			zap.String("userID", userID), zap.Error(err))
	}

	logger.Info("checkout complete",
		zap.String("userID", userID),
		zap.Int("bookings", len(result.Bookings)),
		zap.Float64("total", result.TotalPrice))
	return result, nil
}

func (e *DefaultCheckoutEngine) ListBookings(userID string) ([]models.Booking, error) {
	return e.Bookings.GetByUser(userID)
}

func (e *DefaultCheckoutEngine) CancelBooking(userID, bookingID string) error {
	bk, err := e.Bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return NewNotFoundError("booking %s does not exist", bookingID)
		}
		return err
	}
	if bk.UserID != userID {
		return NewNotFoundError("booking %s does not exist", bookingID)
	}
	if bk.Status == models.BookingStatusCancelled {
		return NewConflictError("booking %s is already cancelled", bookingID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), serviceLockTTL)
	defer cancel()
	release, err := e.Locks.Acquire(ctx, "service:"+bk.ServiceID, serviceLockTTL)
	if err != nil {
		if errors.Is(err, utils.ErrLockHeld) {
			return NewConflictError("another checkout for this service is in progress; try again shortly")
		}
		return err
	}
	defer release()

	if err := e.Catalog.ReleaseBooking(bk.ServiceID, bk); err != nil {
		return err
	}
	return e.Bookings.SetStatus(bookingID, models.BookingStatusCancelled)
}

// commitItem writes the ledger entry matching the item's reservation mode.
func (e *DefaultCheckoutEngine) commitItem(svc *models.Service, item models.CartLineItem) error {
	switch {
	case svc.BookingType == models.BookingTypeDaily:
		return e.Catalog.CommitFullDay(svc.ID, item.BookingDate, false)
	case item.FullVenue:
		return e.Catalog.CommitFullDay(svc.ID, item.BookingDate, true)
	case item.People != nil:
		return e.Catalog.CommitCapacity(svc.ID, item.BookingDate, *item.People, svc.Constraints.MaxCapacity)
	case item.StartHour != nil && item.EndHour != nil:
		return e.Catalog.CommitHourly(svc.ID, item.BookingDate,
			models.HourInterval{StartHour: *item.StartHour, EndHour: *item.EndHour})
	default:
		return fmt.Errorf("cart item %s has no reservation mode", item.ID)
	}
}

func (e *DefaultCheckoutEngine) serviceFor(cache map[string]*models.Service, id string) (*models.Service, error) {
	if svc, ok := cache[id]; ok {
		return svc, nil
	}
	svc, err := e.Catalog.GetByID(id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, NewNotFoundError("service %s does not exist", id)
		}
		return nil, err
	}
	cache[id] = svc
	return svc, nil
}

func distinctServiceIDs(items []models.CartLineItem) []string {
	seen := make(map[string]bool, len(items))
	var ids []string
	for _, it := range items {
		if !seen[it.ServiceID] {
			seen[it.ServiceID] = true
			ids = append(ids, it.ServiceID)
		}
	}
	sort.Strings(ids)
	return ids
}

func requestFromItem(it models.CartLineItem) models.ReservationRequest {
	return models.ReservationRequest{
		ServiceID: it.ServiceID,
		Date:      it.BookingDate,
		StartHour: it.StartHour,
		EndHour:   it.EndHour,
		People:    it.People,
		FullVenue: it.FullVenue,
	}
}

func bookingFromItem(userID string, svc *models.Service, it models.CartLineItem) models.Booking {
	return models.Booking{
		ID:          uuid.New().String(),
		UserID:      userID,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		BookingDate: it.BookingDate,
		StartHour:   it.StartHour,
		EndHour:     it.EndHour,
		People:      it.People,
		FullVenue:   it.FullVenue,
		BookingType: svc.BookingType,
		TotalPrice:  it.CalculatedPrice,
		Status:      models.BookingStatusConfirmed,
		CreatedAt:   time.Now(),
	}
}

func currencyFor(services map[string]*models.Service) string {
	for _, svc := range services {
		if svc.Currency != "" {
			return svc.Currency
		}
	}
	return ""
}
