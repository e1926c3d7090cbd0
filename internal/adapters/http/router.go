package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/waheedridwan/geopoints/internal/pkg/metrics"
)

// SetupRoutes registers all REST and GraphQL routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Resolve bearer tokens ahead of the rate limiter so authenticated
	// callers get their own identity and ceilings.
	app.Use(OptionalAuth(deps))
	app.Use(RateLimitMiddleware(deps))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Cross-origin for browser map clients
	app.Use(cors.New())

	// Health & readiness (no timeout — fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	requestTimeout := deps.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}
	wrap := func(h fiber.Handler) fiber.Handler {
		return timeout.NewWithContext(h, requestTimeout)
	}

	v1 := app.Group("/v1")

	// Auth
	v1.Post("/auth/register", wrap(RegisterHandler(deps)))
	v1.Post("/auth/token", wrap(TokenHandler(deps)))
	v1.Post("/auth/logout", RequireAuth(deps), wrap(LogoutHandler(deps)))

	// Points — spatial routes precede :id so "nearby" never binds as an id
	v1.Get("/points/nearby", wrap(NearbyPointsHandler(deps)))
	v1.Get("/points/nearest", wrap(NearestPointsHandler(deps)))
	v1.Post("/points/within", wrap(WithinPolygonHandler(deps)))
	v1.Get("/points", wrap(ListPointsHandler(deps)))
	v1.Post("/points", RequireAuth(deps), wrap(CreatePointHandler(deps)))
	v1.Get("/points/:id", wrap(GetPointHandler(deps)))
	v1.Put("/points/:id", RequireAuth(deps), wrap(UpdatePointHandler(deps)))
	v1.Delete("/points/:id", RequireAuth(deps), wrap(DeletePointHandler(deps)))

	// Categories
	v1.Get("/categories", wrap(ListCategoriesHandler(deps)))
	v1.Post("/categories", RequireAuth(deps), wrap(CreateCategoryHandler(deps)))
	v1.Get("/categories/:id", wrap(GetCategoryHandler(deps)))
	v1.Put("/categories/:id", RequireAuth(deps), wrap(UpdateCategoryHandler(deps)))
	v1.Delete("/categories/:id", RequireAuth(deps), wrap(DeleteCategoryHandler(deps)))

	// Users
	v1.Get("/users/me", RequireAuth(deps), wrap(MeHandler(deps)))
	v1.Get("/users", RequireAuth(deps), wrap(ListUsersHandler(deps)))
	v1.Post("/users", RequireAuth(deps), wrap(CreateUserHandler(deps)))
	v1.Get("/users/:id", RequireAuth(deps), wrap(GetUserHandler(deps)))
	v1.Put("/users/:id", RequireAuth(deps), wrap(UpdateUserHandler(deps)))
	v1.Delete("/users/:id", RequireAuth(deps), wrap(DeleteUserHandler(deps)))

	// GraphQL (read-only)
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)
}
