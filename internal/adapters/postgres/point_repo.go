package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

// pointColumns is the joined projection shared by every point query.
// Category fields come from a LEFT JOIN and may be NULL.
const pointColumns = `
	p.id, p.name, COALESCE(p.description, ''),
	ST_Y(p.location::geometry) AS lat,
	ST_X(p.location::geometry) AS lng,
	p.category_id,
	c.name, COALESCE(c.description, ''), COALESCE(c.color, ''),
	p.created_at, p.updated_at`

const pointFrom = `FROM points p LEFT JOIN categories c ON c.id = p.category_id`

// PointRepo implements ports.PointRepository with pgx.
type PointRepo struct {
	q Querier
}

// NewPointRepo creates a new PointRepo.
func NewPointRepo(db *DB) *PointRepo {
	return &PointRepo{q: db.Pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoint(row rowScanner) (*domain.Point, error) {
	var (
		p       domain.Point
		catName *string
		catDesc string
		catCol  string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description,
		&p.Location.Lat, &p.Location.Lng,
		&p.CategoryID,
		&catName, &catDesc, &catCol,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.CategoryID != nil && catName != nil {
		p.Category = &domain.CategorySummary{
			ID:          *p.CategoryID,
			Name:        *catName,
			Description: catDesc,
			Color:       catCol,
		}
	}
	p.Coordinates = p.Location.GeoJSON()
	return &p, nil
}

func collectPoints(ctx context.Context, q Querier, sql string, args ...any) ([]domain.Point, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.Point
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, *p)
	}
	return points, rows.Err()
}

// Create inserts a point and returns it in its joined shape.
func (r *PointRepo) Create(ctx context.Context, in domain.PointCreate) (*domain.Point, error) {
	id := uuid.NewString()
	_, err := r.q.Exec(ctx, `
		INSERT INTO points (id, name, description, location, category_id)
		VALUES ($1, $2, NULLIF($3, ''), ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography, $6)
	`, id, in.Name, in.Description, in.Longitude, in.Latitude, in.CategoryID)
	if err != nil {
		return nil, translateErr(err, "point")
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a point, or (nil, nil) when it does not exist.
func (r *PointRepo) GetByID(ctx context.Context, id string) (*domain.Point, error) {
	p, err := scanPoint(r.q.QueryRow(ctx,
		`SELECT `+pointColumns+` `+pointFrom+` WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// List returns a page of points ordered by creation time, newest first.
func (r *PointRepo) List(ctx context.Context, offset, limit int) ([]domain.Point, error) {
	return collectPoints(ctx, r.q,
		`SELECT `+pointColumns+` `+pointFrom+`
		ORDER BY p.created_at DESC, p.id
		OFFSET $1 LIMIT $2`, offset, limit)
}

// ListByCategory returns a page of points in one category.
func (r *PointRepo) ListByCategory(ctx context.Context, categoryID string, offset, limit int) ([]domain.Point, error) {
	return collectPoints(ctx, r.q,
		`SELECT `+pointColumns+` `+pointFrom+`
		WHERE p.category_id = $1
		ORDER BY p.created_at DESC, p.id
		OFFSET $2 LIMIT $3`, categoryID, offset, limit)
}

// Update applies the non-nil patch fields. Returns (nil, nil) when the point
// does not exist.
func (r *PointRepo) Update(ctx context.Context, id string, patch domain.PointPatch) (*domain.Point, error) {
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
	if patch.HasCoordinates() {
		set = append(set, fmt.Sprintf("location = %s", geogRef(idx, idx+1)))
		args = append(args, *patch.Longitude, *patch.Latitude)
		idx += 2
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == "" {
			set = append(set, "category_id = NULL")
		} else {
			set = append(set, fmt.Sprintf("category_id = $%d", idx))
			args = append(args, *patch.CategoryID)
			idx++
		}
	}

	args = append(args, id)
	tag, err := r.q.Exec(ctx,
		fmt.Sprintf("UPDATE points SET %s WHERE id = $%d", strings.Join(set, ", "), idx),
		args...)
	if err != nil {
		return nil, translateErr(err, "point")
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete removes a point, reporting whether a row actually went away.
func (r *PointRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM points WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the number of points, optionally within one category.
func (r *PointRepo) Count(ctx context.Context, categoryID *string) (int, error) {
	var total int
	var err error
	if categoryID != nil && *categoryID != "" {
		err = r.q.QueryRow(ctx, `SELECT count(*) FROM points WHERE category_id = $1`, *categoryID).Scan(&total)
	} else {
		err = r.q.QueryRow(ctx, `SELECT count(*) FROM points`).Scan(&total)
	}
	return total, err
}

// FindNearby returns points within radiusMeters, closest first.
func (r *PointRepo) FindNearby(ctx context.Context, center domain.GeoPoint, radiusMeters float64, limit int) ([]domain.NearbyPoint, error) {
	sql := `SELECT ` + pointColumns + `, ` + distanceExpr(1, 2) + ` AS distance ` + pointFrom + `
		WHERE ` + dwithinClause(1, 2, 3) + `
		ORDER BY distance, p.id
		LIMIT $4`
	return r.collectNearby(ctx, sql, center.Lng, center.Lat, radiusMeters, limit)
}

// FindNearest returns the limit closest points, any distance.
func (r *PointRepo) FindNearest(ctx context.Context, center domain.GeoPoint, limit int) ([]domain.NearbyPoint, error) {
	sql := `SELECT ` + pointColumns + `, ` + distanceExpr(1, 2) + ` AS distance ` + pointFrom + `
		ORDER BY ` + knnOrder(1, 2) + `, p.id
		LIMIT $3`
	return r.collectNearby(ctx, sql, center.Lng, center.Lat, limit)
}

// FindWithinPolygon returns points contained in the WKT polygon.
func (r *PointRepo) FindWithinPolygon(ctx context.Context, polygonWKT string, limit int) ([]domain.Point, error) {
	return collectPoints(ctx, r.q,
		`SELECT `+pointColumns+` `+pointFrom+`
		WHERE `+withinClause(1)+`
		ORDER BY p.created_at DESC, p.id
		LIMIT $2`, polygonWKT, limit)
}

// ClearCategory detaches every point from the category.
func (r *PointRepo) ClearCategory(ctx context.Context, categoryID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE points SET category_id = NULL, updated_at = now() WHERE category_id = $1`,
		categoryID)
	return err
}

func (r *PointRepo) collectNearby(ctx context.Context, sql string, args ...any) ([]domain.NearbyPoint, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.NearbyPoint
	for rows.Next() {
		var (
			np      domain.NearbyPoint
			catName *string
			catDesc string
			catCol  string
		)
		err := rows.Scan(
			&np.ID, &np.Name, &np.Description,
			&np.Location.Lat, &np.Location.Lng,
			&np.CategoryID,
			&catName, &catDesc, &catCol,
			&np.CreatedAt, &np.UpdatedAt,
			&np.Distance,
		)
		if err != nil {
			return nil, err
		}
		if np.CategoryID != nil && catName != nil {
			np.Category = &domain.CategorySummary{
				ID:          *np.CategoryID,
				Name:        *catName,
				Description: catDesc,
				Color:       catCol,
			}
		}
		np.Coordinates = np.Location.GeoJSON()
		points = append(points, np)
	}
	return points, rows.Err()
}
