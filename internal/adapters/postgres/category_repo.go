package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

const categoryColumns = `id, name, COALESCE(description, ''), COALESCE(color, ''), created_at, updated_at`

// CategoryRepo implements ports.CategoryRepository with pgx.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{q: db.Pool}
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a category.
func (r *CategoryRepo) Create(ctx context.Context, in domain.CategoryCreate) (*domain.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `
		INSERT INTO categories (id, name, description, color)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		RETURNING `+categoryColumns,
		uuid.NewString(), in.Name, in.Description, in.Color))
	if err != nil {
		return nil, translateErr(err, "category")
	}
	return c, nil
}

// GetByID returns a category, or (nil, nil) when it does not exist.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// List returns a page of categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name, id OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// Update applies the non-nil patch fields. Returns (nil, nil) when the
// category does not exist.
func (r *CategoryRepo) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	set := []string{"updated_at = now()"}
	args := []any{}
	idx := 1

	if patch.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", idx))
		args = append(args, *patch.Name)
		idx++
	}
	if patch.Description != nil {
		set = append(set, fmt.Sprintf("description = NULLIF($%d, '')", idx))
		args = append(args, *patch.Description)
		idx++
	}
	if patch.Color != nil {
		set = append(set, fmt.Sprintf("color = NULLIF($%d, '')", idx))
		args = append(args, *patch.Color)
		idx++
	}

	args = append(args, id)
	c, err := scanCategory(r.q.QueryRow(ctx,
		fmt.Sprintf("UPDATE categories SET %s WHERE id = $%d RETURNING %s",
			strings.Join(set, ", "), idx, categoryColumns),
		args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translateErr(err, "category")
	}
	return c, nil
}

// Delete removes a category, reporting whether a row actually went away.
func (r *CategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the number of categories.
func (r *CategoryRepo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM categories`).Scan(&total)
	return total, err
}

// NameExists reports whether another category already uses the name.
// excludeID carves out the category being renamed.
func (r *CategoryRepo) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE lower(name) = lower($1) AND ($2 = '' OR id::text <> $2)
		)`, name, excludeID).Scan(&exists)
	return exists, err
}
