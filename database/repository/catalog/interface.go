package catalogRepo

import (
	"errors"

	"festivo/models"
)

// ErrServiceNotFound is returned when the referenced service id is unknown.
var ErrServiceNotFound = errors.New("service not found")

// ErrLedgerConflict is returned when a conditional ledger write matched no
// document: the occupancy it assumed was taken by a concurrent checkout.
var ErrLedgerConflict = errors.New("ledger write lost to a conflicting booking")

// CatalogRepository defines data access for services and their slot ledgers.
type CatalogRepository interface {
	// Create inserts a new service listing.
	Create(svc *models.Service) error
	// GetByID retrieves a service by its unique ID.
	GetByID(id string) (*models.Service, error)
	// GetAll retrieves all services.
	GetAll() ([]models.Service, error)
	// GetByVendor returns the services owned by a vendor.
	GetByVendor(vendorID string) ([]models.Service, error)
	// Update replaces an existing service record.
	Update(svc *models.Service) error
	// Delete removes a service record by its ID.
	Delete(id string) error

	// GetLedger reads the service's current occupancy ledger.
	GetLedger(serviceID string) (*models.SlotLedger, error)
	// CommitFullDay marks a date fully booked. With exclusive set, the write
	// only succeeds when the date carries no entries of any kind.
	CommitFullDay(serviceID string, date models.Date, exclusive bool) error
	// CommitHourly appends an hourly interval, failing on any overlap or an
	// existing full-day entry for the date.
	CommitHourly(serviceID string, date models.Date, iv models.HourInterval) error
	// CommitCapacity adds people to the date's tally, failing when the ceiling
	// would be exceeded. maxCapacity <= 0 means unlimited.
	CommitCapacity(serviceID string, date models.Date, people, maxCapacity int) error
	// ReleaseBooking removes the ledger entry a cancelled booking occupied.
	ReleaseBooking(serviceID string, booking *models.Booking) error
}
