package http

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// kindStatus maps the domain error taxonomy onto HTTP exactly once.
var kindStatus = map[domain.ErrorKind]struct {
	status int
	code   string
}{
	domain.KindValidation:     {fiber.StatusUnprocessableEntity, "validation_error"},
	domain.KindBadRequest:     {fiber.StatusBadRequest, "bad_request"},
	domain.KindNotFound:       {fiber.StatusNotFound, "not_found"},
	domain.KindConflict:       {fiber.StatusConflict, "conflict"},
	domain.KindAuthentication: {fiber.StatusUnauthorized, "unauthorized"},
	domain.KindAuthorization:  {fiber.StatusForbidden, "forbidden"},
	domain.KindRateLimited:    {fiber.StatusTooManyRequests, "rate_limited"},
	domain.KindInternal:       {fiber.StatusInternalServerError, "internal_error"},
}

// sendDomainError converts a service error into its HTTP shape. Internal
// detail is logged here and never leaves the server.
func sendDomainError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	m := kindStatus[kind]

	switch kind {
	case domain.KindInternal:
		slog.Error("request failed", "path", c.Path(), "error", err)
		return newError(c, m.status, m.code, "internal server error")
	case domain.KindAuthentication:
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	case domain.KindRateLimited:
		var de *domain.Error
		if errors.As(err, &de) && de.RetryAfter > 0 {
			// Round up so sub-second waits never advertise "retry now".
			secs := int((de.RetryAfter + time.Second - 1) / time.Second)
			if secs < 1 {
				secs = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
		}
	}

	return newError(c, m.status, m.code, err.Error())
}

// errBadRequest returns a 400 error for transport-level input problems.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errUnauthorized returns a 401 with the Bearer challenge.
func errUnauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return newError(c, fiber.StatusUnauthorized, "unauthorized", msg)
}
