package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

// --- Points ---

// CreatePointHandler stores a new point of interest.
func CreatePointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.PointCreate
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		point, err := deps.Points.Create(c.Context(), in)
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(point)
	}
}

// ListPointsHandler returns a page of points, optionally filtered by
// category_id.
func ListPointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit := pageParams(c)

		var categoryID *string
		if v := c.Query("category_id"); v != "" {
			categoryID = &v
		}

		points, total, err := deps.Points.List(c.Context(), categoryID, page, limit)
		if err != nil {
			return sendDomainError(c, err)
		}
		if points == nil {
			points = []domain.Point{}
		}
		return paginated(c, points, newMeta(total, page, limit))
	}
}

// GetPointHandler returns one point by id.
func GetPointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		point, err := deps.Points.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.JSON(point)
	}
}

// UpdatePointHandler applies a partial update to a point.
func UpdatePointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch domain.PointPatch
		if err := c.BodyParser(&patch); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		point, err := deps.Points.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.JSON(point)
	}
}

// DeletePointHandler removes a point.
func DeletePointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Points.Delete(c.Context(), c.Params("id")); err != nil {
			return sendDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// NearbyPointsHandler returns points within a radius of a location, each
// annotated with its distance in meters.
func NearbyPointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("lat") == "" || c.Query("lng") == "" {
			return errBadRequest(c, "lat and lng are required")
		}
		lat := c.QueryFloat("lat", 0)
		lng := c.QueryFloat("lng", 0)
		radius := c.QueryFloat("radius", 1000)
		limit := c.QueryInt("limit", 0)

		points, err := deps.Points.FindNearby(c.Context(), lat, lng, radius, limit)
		if err != nil {
			return sendDomainError(c, err)
		}
		if points == nil {
			points = []domain.NearbyPoint{}
		}
		return c.JSON(points)
	}
}

// NearestPointsHandler returns the K closest points regardless of distance.
func NearestPointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("lat") == "" || c.Query("lng") == "" {
			return errBadRequest(c, "lat and lng are required")
		}
		lat := c.QueryFloat("lat", 0)
		lng := c.QueryFloat("lng", 0)
		limit := c.QueryInt("limit", 0)

		points, err := deps.Points.FindNearest(c.Context(), lat, lng, limit)
		if err != nil {
			return sendDomainError(c, err)
		}
		if points == nil {
			points = []domain.NearbyPoint{}
		}
		return c.JSON(points)
	}
}

type withinRequest struct {
	Polygon string `json:"polygon" form:"polygon"`
}

// WithinPolygonHandler returns points contained in a WKT polygon. The
// polygon may arrive as a query parameter or in the JSON body.
func WithinPolygonHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		polygon := c.Query("polygon")
		if polygon == "" {
			var req withinRequest
			if err := c.BodyParser(&req); err == nil {
				polygon = req.Polygon
			}
		}
		if polygon == "" {
			return errBadRequest(c, "polygon is required")
		}
		limit := c.QueryInt("limit", 0)

		points, err := deps.Points.FindWithinPolygon(c.Context(), polygon, limit)
		if err != nil {
			return sendDomainError(c, err)
		}
		if points == nil {
			points = []domain.Point{}
		}
		return c.JSON(points)
	}
}

// --- Categories ---

// CreateCategoryHandler stores a new category.
func CreateCategoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.CategoryCreate
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		category, err := deps.Categories.Create(c.Context(), in)
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// ListCategoriesHandler returns a page of categories.
func ListCategoriesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit := pageParams(c)

		categories, total, err := deps.Categories.List(c.Context(), page, limit)
		if err != nil {
			return sendDomainError(c, err)
		}
		if categories == nil {
			categories = []domain.Category{}
		}
		return paginated(c, categories, newMeta(total, page, limit))
	}
}

// GetCategoryHandler returns one category by id.
func GetCategoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		category, err := deps.Categories.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.JSON(category)
	}
}

// UpdateCategoryHandler applies a partial update to a category.
func UpdateCategoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch domain.CategoryPatch
		if err := c.BodyParser(&patch); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		category, err := deps.Categories.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return sendDomainError(c, err)
		}
		return c.JSON(category)
	}
}

// DeleteCategoryHandler removes a category; its points survive uncategorized.
func DeleteCategoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Categories.Delete(c.Context(), c.Params("id")); err != nil {
			return sendDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
