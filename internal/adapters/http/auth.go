package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

const (
	localsUser  = "user"
	localsToken = "token"
)

// bearerToken pulls the raw token out of the Authorization header.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// RequireAuth resolves the bearer token to an active user and stores it in
// locals. Requests without a valid token stop here with 401.
func RequireAuth(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return errUnauthorized(c, "not authenticated")
		}

		user, err := deps.Users.CurrentUser(c.Context(), token)
		if err != nil {
			return sendDomainError(c, err)
		}

		c.Locals(localsUser, user)
		c.Locals(localsToken, token)
		return c.Next()
	}
}

// OptionalAuth resolves a bearer token when one is present but lets
// anonymous requests through. Used ahead of the rate limiter so
// authenticated callers get their higher ceilings.
func OptionalAuth(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}

		user, err := deps.Users.CurrentUser(c.Context(), token)
		if err == nil {
			c.Locals(localsUser, user)
			c.Locals(localsToken, token)
		}
		return c.Next()
	}
}

// currentUser returns the authenticated user stashed by the middleware.
func currentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(localsUser).(*domain.User)
	return user
}
