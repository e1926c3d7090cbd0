package ports

import (
	"context"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

// PointRepository persists points of interest. Lookups return (nil, nil)
// when no row matches; services decide whether that is a NotFound.
type PointRepository interface {
	Create(ctx context.Context, in domain.PointCreate) (*domain.Point, error)
	GetByID(ctx context.Context, id string) (*domain.Point, error)
	List(ctx context.Context, offset, limit int) ([]domain.Point, error)
	ListByCategory(ctx context.Context, categoryID string, offset, limit int) ([]domain.Point, error)
	Update(ctx context.Context, id string, patch domain.PointPatch) (*domain.Point, error)
	// Delete reports whether a row was removed; deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context, categoryID *string) (int, error)

	// Spatial operations. Distances are meters on the spheroid.
	FindNearby(ctx context.Context, center domain.GeoPoint, radiusMeters float64, limit int) ([]domain.NearbyPoint, error)
	FindNearest(ctx context.Context, center domain.GeoPoint, limit int) ([]domain.NearbyPoint, error)
	FindWithinPolygon(ctx context.Context, polygonWKT string, limit int) ([]domain.Point, error)

	// ClearCategory nulls the category reference on every point in the
	// category, used when the category itself is deleted.
	ClearCategory(ctx context.Context, categoryID string) error
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, in domain.CategoryCreate) (*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, offset, limit int) ([]domain.Category, error)
	Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
	NameExists(ctx context.Context, name, excludeID string) (bool, error)
}

// UserRepository persists user accounts. Password hashing happens in the
// service layer; repositories only ever see hashes.
type UserRepository interface {
	Create(ctx context.Context, email, username, hashedPassword string, isActive, isSuperuser bool) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByLogin matches either email or username.
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserStorePatch) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	UsernameExists(ctx context.Context, username, excludeID string) (bool, error)
	UpdateLastLogin(ctx context.Context, id string) (*domain.User, error)
}

// Repositories bundles the tx-scoped repositories handed to a unit of work
// callback.
type Repositories interface {
	Points() PointRepository
	Categories() CategoryRepository
	Users() UserRepository
}

// UnitOfWork runs fn inside a single store transaction. The transaction
// commits when fn returns nil and rolls back otherwise, so multi-step
// mutations are all-or-nothing.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repositories) error) error
}
