package usecases

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/waheedridwan/geopoints/internal/core/domain"
	"github.com/waheedridwan/geopoints/internal/core/ports"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CategoryService handles category business logic.
type CategoryService struct {
	categories ports.CategoryRepository
	uow        ports.UnitOfWork
	events     ports.EventPublisher
}

// NewCategoryService creates a new CategoryService. events may be nil.
func NewCategoryService(categories ports.CategoryRepository, uow ports.UnitOfWork, events ports.EventPublisher) *CategoryService {
	return &CategoryService{categories: categories, uow: uow, events: events}
}

// Create validates and stores a new category. Names are unique.
func (s *CategoryService) Create(ctx context.Context, in domain.CategoryCreate) (*domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if in.Color != "" && !hexColorPattern.MatchString(in.Color) {
		return nil, domain.NewValidation("color must be a hex value like #FF5733")
	}

	exists, err := s.categories.NameExists(ctx, in.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflict("category %q already exists", in.Name)
	}

	return s.categories.Create(ctx, in)
}

// GetByID returns a single category.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NewNotFound("category %s not found", id)
	}
	return category, nil
}

// List returns a page of categories and the total count.
func (s *CategoryService) List(ctx context.Context, page, limit int) ([]domain.Category, int, error) {
	offset, size := pageWindow(page, limit)

	categories, err := s.categories.List(ctx, offset, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categories.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// Update applies a partial update. Renames keep the uniqueness rule,
// excluding the category itself.
func (s *CategoryService) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		patch.Name = &name

		exists, err := s.categories.NameExists(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewConflict("category %q already exists", name)
		}
	}
	if patch.Color != nil && *patch.Color != "" && !hexColorPattern.MatchString(*patch.Color) {
		return nil, domain.NewValidation("color must be a hex value like #FF5733")
	}

	category, err := s.categories.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NewNotFound("category %s not found", id)
	}
	return category, nil
}

// Delete removes a category. Points that referenced it survive with their
// category cleared; both steps run in one transaction.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	err := s.uow.Do(ctx, func(r ports.Repositories) error {
		category, err := r.Categories().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.NewNotFound("category %s not found", id)
		}
		if err := r.Points().ClearCategory(ctx, id); err != nil {
			return err
		}
		_, err = r.Categories().Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	if s.events != nil {
		if perr := s.events.PublishCategoryDeleted(ctx, id); perr != nil {
			slog.Warn("event publish failed", "event", "category.deleted", "error", perr)
		}
	}
	return nil
}
