package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	catalogRepo "festivo/database/repository/catalog"
	"festivo/models"
	"festivo/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const serviceCachePrefix = "service:"
const serviceCacheTTL = 5 * time.Minute

// AvailabilityChecker is the check-availability operation: load the resource
// model and ledger for a service, then run the resolver.
type AvailabilityChecker interface {
	Check(req models.ReservationRequest) (models.AvailabilityResult, error)
}

// DefaultAvailabilityChecker reads service documents through a Redis cache;
// the occupancy ledger is always read fresh so a stale snapshot never
// reports a taken slot as free for longer than one request.
type DefaultAvailabilityChecker struct {
	Catalog catalogRepo.CatalogRepository
	Cache   *redis.Client
}

func (c *DefaultAvailabilityChecker) Check(req models.ReservationRequest) (models.AvailabilityResult, error) {
	if req.ServiceID == "" {
		return models.AvailabilityResult{}, NewInvalidRequestError("serviceId is required")
	}
	if req.Date.IsZero() {
		return models.AvailabilityResult{}, NewInvalidRequestError("bookingDate is required")
	}

	svc, err := c.service(req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return models.AvailabilityResult{}, NewNotFoundError("service %s does not exist", req.ServiceID)
		}
		return models.AvailabilityResult{}, err
	}
	ledger, err := c.Catalog.GetLedger(req.ServiceID)
	if err != nil {
		return models.AvailabilityResult{}, fmt.Errorf("failed to load ledger: %w", err)
	}
	return CheckAvailability(svc, ledger, req)
}

// service returns the resource model, via cache when one is configured.
// Cache failures degrade to a repository read.
func (c *DefaultAvailabilityChecker) service(id string) (*models.Service, error) {
	if c.Cache == nil {
		return c.Catalog.GetByID(id)
	}
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := serviceCachePrefix + id
	if data, err := c.Cache.Get(ctx, key).Result(); err == nil {
		var svc models.Service
		if err := json.Unmarshal([]byte(data), &svc); err == nil {
			return &svc, nil
		}
		logger.Warn("discarding corrupt cached service", zap.String("serviceID", id))
	}

	svc, err := c.Catalog.GetByID(id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(svc); err == nil {
		if err := c.Cache.Set(ctx, key, data, serviceCacheTTL).Err(); err != nil {
			logger.Warn("failed to cache service", zap.String("serviceID", id), zap.Error(err))
		}
	}
	return svc, nil
}

// InvalidateServiceCache drops a cached service document after a vendor edit.
func InvalidateServiceCache(client *redis.Client, serviceID string) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Del(ctx, serviceCachePrefix+serviceID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate service cache",
			zap.String("serviceID", serviceID), zap.Error(err))
	}
}
