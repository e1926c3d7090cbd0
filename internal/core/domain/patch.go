package domain

// Patch types carry partial updates. A nil field means "leave untouched";
// a non-nil field is applied even when it points at a zero value. This
// replaces the dynamic attribute loops of older variants with explicit
// field presence.

// PointCreate is the input for creating a point.
type PointCreate struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CategoryID  *string `json:"category_id"`
}

// PointPatch is a partial update for a point.
type PointPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	CategoryID  *string  `json:"category_id"`
}

// HasCoordinates reports whether the patch moves the point. Both components
// must be present; a lone latitude or longitude is rejected upstream.
func (p *PointPatch) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// CategoryCreate is the input for creating a category.
type CategoryCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CategoryPatch is a partial update for a category.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// UserCreate is the input for registration.
type UserCreate struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	IsActive    *bool  `json:"is_active"`
	IsSuperuser *bool  `json:"is_superuser"`
}

// UserPatch is a partial update for a user. Password arrives in plain text
// and is hashed by the service before it reaches storage.
type UserPatch struct {
	Email       *string `json:"email"`
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}

// UserStorePatch is the storage-level shape of a user update; the password
// field carries a bcrypt hash, never plain text.
type UserStorePatch struct {
	Email          *string
	Username       *string
	HashedPassword *string
	IsActive       *bool
	IsSuperuser    *bool
}
