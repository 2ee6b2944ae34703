package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"taxidesk/config"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage"
)

const vehicleCacheKey = "vehicles:catalog"

type VehicleService interface {
	List(ctx context.Context) ([]*models.Vehicle, error)
}

type vehicleService struct {
	stg   storage.IVehicleStorage
	cache *redis.Client
	ttl   time.Duration
	log   logger.ILogger
}

func NewVehicleService(stg storage.IStorage, cache *redis.Client, cfg config.Config, log logger.ILogger) VehicleService {
	if !cfg.CacheEnabled {
		cache = nil
	}
	return &vehicleService{
		stg:   stg.Vehicle(),
		cache: cache,
		ttl:   time.Duration(cfg.CacheTTLSec) * time.Second,
		log:   log,
	}
}

// List returns the vehicle catalog. The catalog is seeded reference data, so
// it is served from cache when one is configured; any cache failure degrades
// to a storage read.
func (s *vehicleService) List(ctx context.Context) ([]*models.Vehicle, error) {
	if s.cache != nil {
		val, err := s.cache.Get(ctx, vehicleCacheKey).Result()
		if err == nil {
			var vehicles []*models.Vehicle
			if err := json.Unmarshal([]byte(val), &vehicles); err == nil {
				return vehicles, nil
			}
			s.log.Warning("corrupt vehicle cache entry, rereading from storage")
		} else if err != redis.Nil {
			s.log.Warning("vehicle cache read failed", logger.Error(err))
		}
	}

	vehicles, err := s.stg.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(vehicles); err == nil {
			if err := s.cache.Set(ctx, vehicleCacheKey, data, s.ttl).Err(); err != nil {
				s.log.Warning("vehicle cache write failed", logger.Error(err))
			}
		}
	}
	return vehicles, nil
}
