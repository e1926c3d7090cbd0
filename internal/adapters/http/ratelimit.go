package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/waheedridwan/geopoints/internal/core/domain"
	"github.com/waheedridwan/geopoints/internal/pkg/metrics"
)

// RateLimitMiddleware enforces the tier policy per (identity, path).
// Identity is the authenticated user id when there is one, else the client
// IP, so logging in moves a caller into their own budget.
func RateLimitMiddleware(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !deps.RateLimitEnabled {
			return c.Next()
		}

		user := currentUser(c)
		identity := clientIP(c)
		if user != nil {
			identity = user.ID
		}

		path := c.Path()
		tier := deps.Policy.TierFor(path, c.Method(), user != nil)
		res := deps.Limiter.Check(identity, path, tier.Limit, tier.Window)

		c.Set("X-RateLimit-Limit", strconv.Itoa(tier.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			metrics.RateLimited.WithLabelValues(tierLabel(path, c.Method())).Inc()
			return sendDomainError(c, domain.NewRateLimited(res.RetryAfter))
		}
		return c.Next()
	}
}

// clientIP honors X-Forwarded-For when a proxy sits in front, falling back
// to the socket address.
func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	return c.IP()
}

func tierLabel(path, method string) string {
	switch {
	case strings.HasPrefix(path, "/v1/auth/"):
		return "auth"
	case strings.HasSuffix(path, "/nearby"), strings.HasSuffix(path, "/within"), strings.HasSuffix(path, "/nearest"):
		return "intensive"
	case method == fiber.MethodPost || method == fiber.MethodPut || method == fiber.MethodDelete:
		return "write"
	default:
		return "standard"
	}
}
