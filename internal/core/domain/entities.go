package domain

import (
	"time"
)

// Category groups points of interest (e.g. Restaurant, Museum).
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"` // hex, e.g. #FF5733
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategorySummary is the nested category shape embedded in point responses.
type CategorySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// Summary returns the embeddable shape of a category.
func (c *Category) Summary() *CategorySummary {
	return &CategorySummary{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
	}
}

// Point is a geographic point of interest.
type Point struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Location    GeoPoint         `json:"location"`
	Coordinates GeoJSONPoint     `json:"coordinates"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Category    *CategorySummary `json:"category,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NearbyPoint is a point annotated with its distance in meters from a
// reference location. It exists only in spatial query results.
type NearbyPoint struct {
	Point
	Distance float64 `json:"distance"`
}

// User is an account that can authenticate against the API.
type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	HashedPassword string     `json:"-"`
	IsActive       bool       `json:"is_active"`
	IsSuperuser    bool       `json:"is_superuser"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

// Token is a bearer credential issued after authentication.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
