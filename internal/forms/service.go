package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticket-store/internal/logger"
	"ticket-store/internal/models"

	"github.com/go-redis/redis/v8"
)

// Sources reported to the UI.
const (
	SourceData     = "data"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// FormFetcher is the provider surface the service needs.
type FormFetcher interface {
	FetchForm(ctx context.Context, formID string) (*models.HubSpotForm, error)
}

// Service resolves dropdown options for the checkout form: Redis cache
// first, then the forms provider, then the static fallback. Option lookups
// never fail; the fallback always answers.
type Service struct {
	Client   FormFetcher
	Redis    *redis.Client
	Logger   *logger.Logger
	FormID   string
	CacheTTL time.Duration
}

func NewService(client FormFetcher, redisClient *redis.Client, log *logger.Logger, formID string, cacheTTL time.Duration) *Service {
	return &Service{
		Client:   client,
		Redis:    redisClient,
		Logger:   log,
		FormID:   formID,
		CacheTTL: cacheTTL,
	}
}

// GetFieldOptions returns the options of one form field plus where they came
// from.
func (s *Service) GetFieldOptions(ctx context.Context, fieldName string, fallback []models.FormOption) models.FormOptionsResponse {
	cacheKey := "forms:" + s.FormID + ":" + fieldName

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var options []models.FormOption
			if err := json.Unmarshal([]byte(cached), &options); err == nil && len(options) > 0 {
				return models.FormOptionsResponse{Options: options, Source: SourceCache}
			}
		}
	}

	form, err := s.Client.FetchForm(ctx, s.FormID)
	if err != nil {
		s.Logger.Warn("FORMS", fmt.Sprintf("form fetch failed for %s, serving fallback: %v", fieldName, err))
		return models.FormOptionsResponse{Options: fallback, Source: SourceFallback}
	}

	options := ExtractFieldOptions(form, fieldName)
	if len(options) == 0 {
		s.Logger.Warn("FORMS", fmt.Sprintf("no options found for field %s, serving fallback", fieldName))
		return models.FormOptionsResponse{Options: fallback, Source: SourceFallback}
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(options); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, s.CacheTTL).Err(); err != nil {
				s.Logger.Warn("FORMS", fmt.Sprintf("failed to cache options for %s: %v", fieldName, err))
			}
		}
	}
	return models.FormOptionsResponse{Options: options, Source: SourceData}
}
