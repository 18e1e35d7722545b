package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/repository"
)

const (
	servicesKey    = "clinic:catalog:services"
	medicationsKey = "clinic:catalog:medications"
)

// Cache is a read-through cache for the two reference catalogs the front
// desk hits on every booking: billable services and medications. Writes
// go through the repositories; the cache is only invalidated here.
type Cache struct {
	kv             KVStore
	serviceRepo    repository.ServiceRepository
	medicationRepo repository.MedicationRepository
	ttl            time.Duration
	log            *zap.Logger
}

func NewCache(
	kv KVStore,
	serviceRepo repository.ServiceRepository,
	medicationRepo repository.MedicationRepository,
	ttl time.Duration,
	log *zap.Logger,
) *Cache {
	return &Cache{
		kv:             kv,
		serviceRepo:    serviceRepo,
		medicationRepo: medicationRepo,
		ttl:            ttl,
		log:            log,
	}
}

// Services returns the active service catalog, from cache when fresh.
func (c *Cache) Services(ctx context.Context) ([]model.Service, error) {
	if val, err := c.kv.Get(ctx, servicesKey); err == nil {
		var services []model.Service
		if err := json.Unmarshal([]byte(val), &services); err == nil {
			return services, nil
		}
		// Corrupt entry; fall through to the database.
		c.log.Warn("dropping unreadable catalog cache entry", zap.String("key", servicesKey))
	} else if err != ErrCacheMiss {
		c.log.Warn("catalog cache read failed", zap.Error(err))
	}

	services, _, err := c.serviceRepo.List(ctx, true, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	c.store(ctx, servicesKey, services)
	return services, nil
}

// Medications returns the medication reference list, from cache when fresh.
func (c *Cache) Medications(ctx context.Context) ([]model.Medication, error) {
	if val, err := c.kv.Get(ctx, medicationsKey); err == nil {
		var medications []model.Medication
		if err := json.Unmarshal([]byte(val), &medications); err == nil {
			return medications, nil
		}
		c.log.Warn("dropping unreadable catalog cache entry", zap.String("key", medicationsKey))
	} else if err != ErrCacheMiss {
		c.log.Warn("catalog cache read failed", zap.Error(err))
	}

	medications, _, err := c.medicationRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	c.store(ctx, medicationsKey, medications)
	return medications, nil
}

// Invalidate drops both catalog entries; called after catalog writes.
func (c *Cache) Invalidate(ctx context.Context) {
	if err := c.kv.Del(ctx, servicesKey, medicationsKey); err != nil {
		c.log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (c *Cache) store(ctx context.Context, key string, v any) {
	if c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.kv.Set(ctx, key, string(data), c.ttl); err != nil {
		c.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
