package http

import (
	"time"

	natsadapter "github.com/waheedridwan/geopoints/internal/adapters/nats"
	"github.com/waheedridwan/geopoints/internal/adapters/postgres"
	"github.com/waheedridwan/geopoints/internal/adapters/valkey"
	"github.com/waheedridwan/geopoints/internal/core/usecases"
	"github.com/waheedridwan/geopoints/internal/pkg/ratelimit"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Points     *usecases.PointService
	Categories *usecases.CategoryService
	Users      *usecases.UserService

	Limiter          *ratelimit.Limiter
	Policy           ratelimit.Policy
	RateLimitEnabled bool

	// RequestTimeout is the per-route deadline. Zero falls back to 15s.
	RequestTimeout time.Duration

	DB     *postgres.DB
	Cache  *valkey.Cache
	Events *natsadapter.Publisher
}
