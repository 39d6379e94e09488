package booking

import (
	"errors"
	"fmt"
	"time"

	cartRepo "festivo/database/repository/cart"
	catalogRepo "festivo/database/repository/catalog"
	"festivo/models"
	"festivo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService is the cart mutation protocol. Every mutation re-establishes
// the invariant that the cart total equals the sum of its line items.
type CartService interface {
	AddToCart(userID string, req models.ReservationRequest) (*models.Cart, string, error)
	RemoveFromCart(userID string, req models.ReservationRequest) (*models.Cart, int, error)
	ClearCart(userID string) (*models.Cart, int, error)
	GetCart(userID string) (*models.Cart, error)
}

// DefaultCartService implements CartService. Mutations for the same user are
// serialized with a per-user mutex; different users never contend.
type DefaultCartService struct {
	Catalog catalogRepo.CatalogRepository
	Carts   cartRepo.CartRepository
	locks   keyedMutex
}

func (s *DefaultCartService) AddToCart(userID string, req models.ReservationRequest) (*models.Cart, string, error) {
	if req.ServiceID == "" || req.Date.IsZero() {
		return nil, "", NewInvalidRequestError("serviceId and bookingDate are required")
	}
	unlock := s.locks.Lock(userID)
	defer unlock()

	svc, err := s.Catalog.GetByID(req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, "", NewNotFoundError("service %s does not exist", req.ServiceID)
		}
		return nil, "", err
	}
	if svc.BookingType == models.BookingTypeDisplay {
		msg := "this listing cannot be reserved here"
		if svc.ExternalBookingURL != "" {
			msg = fmt.Sprintf("this listing cannot be reserved here; book via %s", svc.ExternalBookingURL)
		}
		return nil, "", NewUnsupportedError("%s", msg)
	}
	ledger, err := s.Catalog.GetLedger(req.ServiceID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load ledger: %w", err)
	}

	result, err := CheckAvailability(svc, ledger, req)
	if err != nil {
		return nil, "", err
	}
	if !result.Available {
		return nil, "", NewConflictError("%s", result.Message)
	}

	cart, err := s.loadOrCreate(userID)
	if err != nil {
		return nil, "", err
	}
	for _, it := range cart.Items {
		if it.SameSlot(req.ServiceID, req.Date, req.StartHour, req.EndHour) {
			return nil, "", NewConflictError("this reservation is already in your cart")
		}
	}

	item := models.CartLineItem{
		ID:              uuid.New().String(),
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		BookingDate:     req.Date,
		StartHour:       req.StartHour,
		EndHour:         req.EndHour,
		People:          req.People,
		FullVenue:       req.FullVenue,
		CalculatedPrice: CalculatePrice(svc, req),
		AddedAt:         time.Now(),
	}
	cart.Items = append(cart.Items, item)
	cart.RecomputeTotal()
	if err := s.Carts.Save(cart); err != nil {
		return nil, "", err
	}

	utils.GetLogger().Info("cart item added",
		zap.String("userID", userID),
		zap.String("serviceID", svc.ID),
		zap.Float64("price", item.CalculatedPrice))
	return cart, addedMessage(svc, item), nil
}

func (s *DefaultCartService) RemoveFromCart(userID string, req models.ReservationRequest) (*models.Cart, int, error) {
	if req.ServiceID == "" || req.Date.IsZero() {
		return nil, 0, NewInvalidRequestError("serviceId and bookingDate are required")
	}
	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.Carts.GetByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, 0, NewNotFoundError("your cart is empty")
	}

	kept := cart.Items[:0]
	removed := 0
	for _, it := range cart.Items {
		if matchesRemoval(it, req) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	if removed == 0 {
		return nil, 0, NewNotFoundError("no matching reservation found in your cart")
	}
	cart.Items = kept
	cart.RecomputeTotal()
	if err := s.Carts.Save(cart); err != nil {
		return nil, 0, err
	}
	return cart, removed, nil
}

func (s *DefaultCartService) ClearCart(userID string) (*models.Cart, int, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.loadOrCreate(userID)
	if err != nil {
		return nil, 0, err
	}
	cleared := len(cart.Items)
	cart.Items = []models.CartLineItem{}
	cart.TotalPrice = 0
	if err := s.Carts.Save(cart); err != nil {
		return nil, 0, err
	}
	return cart, cleared, nil
}

func (s *DefaultCartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.Carts.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return models.EmptyCart(userID), nil
	}
	if cart.Items == nil {
		cart.Items = []models.CartLineItem{}
	}
	return cart, nil
}

func (s *DefaultCartService) loadOrCreate(userID string) (*models.Cart, error) {
	cart, err := s.Carts.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = models.EmptyCart(userID)
		cart.ID = uuid.New().String()
	}
	return cart, nil
}

// matchesRemoval implements the removal key: service and date always, plus
// exact hour bounds when the caller supplied them.
func matchesRemoval(it models.CartLineItem, req models.ReservationRequest) bool {
	if it.ServiceID != req.ServiceID || it.BookingDate != req.Date {
		return false
	}
	if req.HasHours() {
		return it.StartHour != nil && it.EndHour != nil &&
			*it.StartHour == *req.StartHour && *it.EndHour == *req.EndHour
	}
	return true
}

// addedMessage builds the confirmation with booking-type-specific detail.
func addedMessage(svc *models.Service, item models.CartLineItem) string {
	detail := ""
	switch {
	case item.FullVenue:
		detail = " (full venue)"
	case item.StartHour != nil && item.EndHour != nil:
		detail = fmt.Sprintf(" from %s to %s", formatHour(*item.StartHour), formatHour(*item.EndHour))
	case item.People != nil:
		detail = fmt.Sprintf(" for %d people", *item.People)
	}
	return fmt.Sprintf("Added %s on %s%s to your cart for %.2f.",
		svc.Name, item.BookingDate, detail, item.CalculatedPrice)
}
