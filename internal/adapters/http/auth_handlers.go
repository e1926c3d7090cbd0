package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterHandler creates a regular account.
func RegisterHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.UserCreate
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		user, err := deps.Users.Register(c.Context(), in)
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// TokenHandler exchanges credentials for a bearer token. The username field
// accepts either email or username, as form data or JSON.
func TokenHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var creds credentials
		if err := c.BodyParser(&creds); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if creds.Username == "" || creds.Password == "" {
			return errBadRequest(c, "username and password are required")
		}

		token, err := deps.Users.Authenticate(c.Context(), creds.Username, creds.Password)
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.JSON(token)
	}
}

// LogoutHandler revokes the presented token for the rest of its lifetime.
func LogoutHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals(localsToken).(string)
		if err := deps.Users.Logout(c.Context(), token); err != nil {
			return sendDomainError(c, err)
		}
		return c.JSON(fiber.Map{"detail": "successfully logged out"})
	}
}

// MeHandler returns the authenticated account.
func MeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(currentUser(c))
	}
}

// --- User administration ---

// CreateUserHandler creates an account with explicit flags. Superuser only.
func CreateUserHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.UserCreate
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		user, err := deps.Users.CreateUser(c.Context(), currentUser(c), in)
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// ListUsersHandler returns a page of accounts. Superuser only.
func ListUsersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit := pageParams(c)

		users, total, err := deps.Users.List(c.Context(), currentUser(c), page, limit)
		if err != nil {
			return sendDomainError(c, err)
		}
		if users == nil {
			users = []domain.User{}
		}
		return paginated(c, users, newMeta(total, page, limit))
	}
}

// GetUserHandler returns one account: yourself, or anyone if superuser.
func GetUserHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := deps.Users.GetUser(c.Context(), currentUser(c), c.Params("id"))
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.JSON(user)
	}
}

// UpdateUserHandler applies a partial account update.
func UpdateUserHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch domain.UserPatch
		if err := c.BodyParser(&patch); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		user, err := deps.Users.UpdateUser(c.Context(), currentUser(c), c.Params("id"), patch)
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.JSON(user)
	}
}

// DeleteUserHandler removes an account. Superuser only.
func DeleteUserHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Users.DeleteUser(c.Context(), currentUser(c), c.Params("id")); err != nil {
			return sendDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
