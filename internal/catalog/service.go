package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticket-store/internal/logger"
	"ticket-store/internal/models"

	"github.com/go-redis/redis/v8"
)

// ProductLister is the local-store surface the service needs.
type ProductLister interface {
	ListProducts(ctx context.Context, eventID string) ([]models.Product, error)
}

// ProductFetcher is the upstream surface; nil means no upstream configured.
type ProductFetcher interface {
	FetchProducts(ctx context.Context, eventID string) ([]models.Product, error)
}

// Service serves the ticket catalog for the configured event. The upstream
// event service is authoritative when configured; the local products table
// answers otherwise, and a Redis cache sits in front of both.
type Service struct {
	DB       ProductLister
	Upstream ProductFetcher
	Redis    *redis.Client
	Logger   *logger.Logger
	EventID  string
	CacheTTL time.Duration
}

func NewService(db ProductLister, upstream ProductFetcher, redisClient *redis.Client, log *logger.Logger, eventID string, cacheTTL time.Duration) *Service {
	return &Service{
		DB:       db,
		Upstream: upstream,
		Redis:    redisClient,
		Logger:   log,
		EventID:  eventID,
		CacheTTL: cacheTTL,
	}
}

// ListProducts returns the published products of the store's event.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	cacheKey := "catalog:" + s.EventID + ":products"

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var products []models.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(products); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, s.CacheTTL).Err(); err != nil {
				s.Logger.Warn("CATALOG", fmt.Sprintf("failed to cache products: %v", err))
			}
		}
	}
	return products, nil
}

func (s *Service) load(ctx context.Context) ([]models.Product, error) {
	if s.Upstream != nil {
		products, err := s.Upstream.FetchProducts(ctx, s.EventID)
		if err == nil {
			return products, nil
		}
		s.Logger.Warn("CATALOG", fmt.Sprintf("upstream catalog failed, falling back to local store: %v", err))
	}
	return s.DB.ListProducts(ctx, s.EventID)
}
