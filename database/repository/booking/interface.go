package bookingRepo

import (
	"errors"

	"festivo/models"
)

var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository defines data access for confirmed booking records.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByUser(userID string) ([]models.Booking, error)
	SetStatus(id, status string) error
}
