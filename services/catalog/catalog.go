package catalog

import (
	"fmt"
	"time"

	catalogRepo "festivo/database/repository/catalog"
	"festivo/models"
	"festivo/services/booking"
	"festivo/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages vendor listings: the resource model (booking type,
// pricing table, constraints) the availability resolver dispatches on.
type CatalogService interface {
	CreateService(svc models.Service) (*models.Service, error)
	GetService(id string) (*models.Service, error)
	ListServices() ([]models.Service, error)
	ListVendorServices(vendorID string) ([]models.Service, error)
	UpdateService(vendorID string, svc models.Service) (*models.Service, error)
	DeleteService(vendorID, serviceID string) error
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo  catalogRepo.CatalogRepository
	Cache *redis.Client
}

func (s *DefaultCatalogService) CreateService(svc models.Service) (*models.Service, error) {
	if err := validateService(&svc); err != nil {
		return nil, err
	}
	svc.ID = uuid.New().String()
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	svc.Ledger = models.SlotLedger{Days: []models.DayLedger{}}
	if err := s.Repo.Create(&svc); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("service created",
		zap.String("serviceID", svc.ID), zap.String("vendorID", svc.VendorID))
	return &svc, nil
}

func (s *DefaultCatalogService) GetService(id string) (*models.Service, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultCatalogService) ListServices() ([]models.Service, error) {
	return s.Repo.GetAll()
}

func (s *DefaultCatalogService) ListVendorServices(vendorID string) ([]models.Service, error) {
	return s.Repo.GetByVendor(vendorID)
}

func (s *DefaultCatalogService) UpdateService(vendorID string, svc models.Service) (*models.Service, error) {
	existing, err := s.Repo.GetByID(svc.ID)
	if err != nil {
		return nil, err
	}
	if existing.VendorID != vendorID {
		return nil, fmt.Errorf("service %s does not belong to vendor %s", svc.ID, vendorID)
	}
	if err := validateService(&svc); err != nil {
		return nil, err
	}
	// The occupancy ledger is never editable through the catalog.
	svc.VendorID = existing.VendorID
	svc.Ledger = existing.Ledger
	svc.CreatedAt = existing.CreatedAt
	svc.UpdatedAt = time.Now()
	if err := s.Repo.Update(&svc); err != nil {
		return nil, err
	}
	booking.InvalidateServiceCache(s.Cache, svc.ID)
	return &svc, nil
}

func (s *DefaultCatalogService) DeleteService(vendorID, serviceID string) error {
	existing, err := s.Repo.GetByID(serviceID)
	if err != nil {
		return err
	}
	if existing.VendorID != vendorID {
		return fmt.Errorf("service %s does not belong to vendor %s", serviceID, vendorID)
	}
	if err := s.Repo.Delete(serviceID); err != nil {
		return err
	}
	booking.InvalidateServiceCache(s.Cache, serviceID)
	return nil
}

func validateService(svc *models.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("service name is required")
	}
	if !svc.BookingType.Valid() {
		return fmt.Errorf("unknown booking type %q", svc.BookingType)
	}
	if svc.BookingType == models.BookingTypeDisplay && svc.ExternalBookingURL == "" {
		return fmt.Errorf("display listings require an external booking URL")
	}
	c := svc.Constraints
	if c.MinBookingHours < 0 || c.MaxBookingHours < 0 {
		return fmt.Errorf("booking-hour bounds cannot be negative")
	}
	if c.MinBookingHours > 0 && c.MaxBookingHours > 0 && c.MinBookingHours > c.MaxBookingHours {
		return fmt.Errorf("minBookingHours cannot exceed maxBookingHours")
	}
	for _, h := range c.AvailableHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("available hour %d is outside 0-23", h)
		}
	}
	if c.CleanupTimeMinutes < 0 {
		return fmt.Errorf("cleanupTimeMinutes cannot be negative")
	}
	if c.MaxCapacity < 0 {
		return fmt.Errorf("maxCapacity cannot be negative")
	}
	return nil
}
