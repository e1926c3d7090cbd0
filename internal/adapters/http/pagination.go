package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/waheedridwan/geopoints/internal/core/usecases"
)

// PaginatedResponse is the listing envelope. Error is always null here; the
// field exists so success and failure bodies share a shape.
type PaginatedResponse struct {
	Data  interface{} `json:"data"`
	Meta  Meta        `json:"meta"`
	Error interface{} `json:"error"`
}

// Meta carries page-based pagination info.
type Meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// pageParams reads page/limit query parameters with the service defaults.
func pageParams(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", usecases.DefaultPage)
	limit = c.QueryInt("limit", usecases.DefaultPageSize)
	if page < 1 {
		page = usecases.DefaultPage
	}
	if limit < 1 {
		limit = usecases.DefaultPageSize
	}
	if limit > usecases.MaxPageSize {
		limit = usecases.MaxPageSize
	}
	return page, limit
}

// newMeta computes the page count for a listing.
func newMeta(total, page, limit int) Meta {
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return Meta{Total: total, Page: page, Limit: limit, Pages: pages}
}

// paginated renders the envelope plus RFC 8288 Link headers.
func paginated(c *fiber.Ctx, data interface{}, meta Meta) error {
	SetLinkHeaders(c, meta)
	return c.JSON(PaginatedResponse{Data: data, Meta: meta})
}

// SetLinkHeaders adds RFC 8288 Link headers for paginated responses.
// It uses the current request path.
func SetLinkHeaders(c *fiber.Ctx, m Meta) {
	base := c.Path()
	link := func(page int, rel string) string {
		return fmt.Sprintf(`<%s?page=%d&limit=%d>; rel=%q`, base, page, m.Limit, rel)
	}

	links := []string{link(1, "first")}
	if m.Page > 1 {
		links = append(links, link(m.Page-1, "prev"))
	}
	if m.Page < m.Pages {
		links = append(links, link(m.Page+1, "next"))
	}
	last := m.Pages
	if last < 1 {
		last = 1
	}
	links = append(links, link(last, "last"))

	c.Set("Link", strings.Join(links, ", "))
}
