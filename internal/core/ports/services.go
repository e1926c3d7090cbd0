package ports

import (
	"context"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher publishes catalog lifecycle events to a message broker.
// Publishing is best effort; services log failures but never fail the
// request over them.
type EventPublisher interface {
	PublishPointCreated(ctx context.Context, p *domain.Point) error
	PublishPointUpdated(ctx context.Context, p *domain.Point) error
	PublishPointDeleted(ctx context.Context, id string) error
	PublishCategoryDeleted(ctx context.Context, id string) error
}
