package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"passportal/internal/application/models"
	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/sentinel"
	"passportal/pkg/requestcontext"
)

// TrackingData is the public snapshot returned for one application.
type TrackingData struct {
	ID          string              `json:"id"`
	Status      models.Status       `json:"applicationStatus"`
	Description string              `json:"description"`
	NextSteps   []string            `json:"nextSteps"`
	LastUpdated time.Time           `json:"lastUpdated"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

// ApplicationReader is the slice of the application store tracking needs.
type ApplicationReader interface {
	FindByID(ctx context.Context, id string) (*models.ApplicationRecord, error)
}

// Cache holds serialized snapshots for the public tracking endpoint, which
// takes unauthenticated traffic and is the portal's hottest read path.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// RedisCache backs Cache with Redis. Failures degrade to cache misses.
type RedisCache struct {
	client *goredis.Client
	logger *slog.Logger
}

func NewRedisCache(client *goredis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.WarnContext(ctx, "tracking cache read failed", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "tracking cache write failed", "key", key, "error", err)
	}
}

// Service resolves application IDs to tracking snapshots.
type Service struct {
	store  ApplicationReader
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Service)

// WithCache enables snapshot caching. Snapshots may lag a status change by at
// most the TTL.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.ttl = ttl
	}
}

func New(store ApplicationReader, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const cachePrefix = "tracking:"

// Track returns the snapshot for one application.
func (s *Service) Track(ctx context.Context, id string) (*TrackingData, error) {
	if !models.ValidApplicationID(id) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "malformed application id")
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, cachePrefix+id); ok {
			var data TrackingData
			if err := json.Unmarshal([]byte(raw), &data); err == nil {
				return &data, nil
			}
			s.logger.WarnContext(ctx, "discarding corrupt tracking cache entry", "application_id", id)
		}
	}

	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no application found with this id")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load application")
	}

	data := &TrackingData{
		ID:          record.ID,
		Status:      record.Status,
		Description: StatusDescription(record.Status),
		NextSteps:   NextSteps(record.Status),
		LastUpdated: record.LastUpdated,
		Appointment: record.Appointment,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(data); err == nil {
			s.cache.Set(ctx, cachePrefix+id, string(raw), s.ttl)
		}
	}

	s.logger.InfoContext(ctx, "application tracked",
		"request_id", requestcontext.RequestID(ctx),
		"application_id", id,
		"status", record.Status,
	)
	return data, nil
}
