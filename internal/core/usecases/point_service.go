package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"time"

	"github.com/waheedridwan/geopoints/internal/core/domain"
	"github.com/waheedridwan/geopoints/internal/core/ports"
	"github.com/waheedridwan/geopoints/internal/pkg/geospatial"
	"github.com/waheedridwan/geopoints/internal/pkg/metrics"
)

const (
	// MaxNameLength matches the width of the name columns.
	MaxNameLength = 100

	// MaxRadiusMeters bounds proximity searches; anything wider is a table
	// scan in disguise.
	MaxRadiusMeters = 100_000

	// DefaultSpatialLimit / MaxSpatialLimit bound nearby and within results.
	DefaultSpatialLimit = 100
	MaxSpatialLimit     = 500

	// DefaultNearestLimit / MaxNearestLimit bound KNN results.
	DefaultNearestLimit = 5
	MaxNearestLimit     = 100

	// spatialCacheTTL is how long spatial query results stay cached, in
	// seconds. Short on purpose: writes do not invalidate.
	spatialCacheTTL = 60
)

// PointService handles point-of-interest business logic.
type PointService struct {
	points     ports.PointRepository
	categories ports.CategoryRepository
	cache      ports.CacheService
	events     ports.EventPublisher
}

// NewPointService creates a new PointService. cache and events may be nil.
func NewPointService(points ports.PointRepository, categories ports.CategoryRepository, cache ports.CacheService, events ports.EventPublisher) *PointService {
	return &PointService{points: points, categories: categories, cache: cache, events: events}
}

// Create validates and stores a new point.
func (s *PointService) Create(ctx context.Context, in domain.PointCreate) (*domain.Point, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if _, err := geospatial.NewPoint(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	point, err := s.points.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.publish("point.created", func() error { return s.events.PublishPointCreated(ctx, point) })
	return point, nil
}

// GetByID returns a single point.
func (s *PointService) GetByID(ctx context.Context, id string) (*domain.Point, error) {
	point, err := s.points.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if point == nil {
		return nil, domain.NewNotFound("point %s not found", id)
	}
	return point, nil
}

// List returns a page of points, optionally filtered by category, along
// with the unfiltered total for that filter.
func (s *PointService) List(ctx context.Context, categoryID *string, page, limit int) ([]domain.Point, int, error) {
	offset, size := pageWindow(page, limit)

	var (
		points []domain.Point
		err    error
	)
	if categoryID != nil && *categoryID != "" {
		points, err = s.points.ListByCategory(ctx, *categoryID, offset, size)
	} else {
		points, err = s.points.List(ctx, offset, size)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.points.Count(ctx, categoryID)
	if err != nil {
		return nil, 0, err
	}
	return points, total, nil
}

/// Update applies a partial update. Coordinates move together: a lone
// latitude or longitude is rejected.
func (s *PointService) Update(ctx context.Context, id string, patch domain.PointPatch) (*domain.Point, error) {
	if (patch.Latitude == nil) != (patch.Longitude == nil) {
		return nil, domain.NewValidation("latitude and longitude must be provided together")
	}
	if patch.HasCoordinates() {
		if _, err := geospatial.NewPoint(*patch.Latitude, *patch.Longitude); err != nil {
			return nil, err
		}
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if err := s.checkCategory(ctx, patch.CategoryID); err != nil {
		return nil, err
	}

	point, err := s.points.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if point == nil {
		return nil, domain.NewNotFound("point %s not found", id)
	}

	s.publish("point.updated", func() error { return s.events.PublishPointUpdated(ctx, point) })
	return point, nil
}

// Delete removes a point.
func (s *PointService) Delete(ctx context.Context, id string) error {
	deleted, err := s.points.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFound("point %s not found", id)
	}

	s.publish("point.deleted", func() error { return s.events.PublishPointDeleted(ctx, id) })
	return nil
}

// FindNearby returns points within radiusMeters of the given location,
// closest first, each annotated with its distance in meters.
func (s *PointService) FindNearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]domain.NearbyPoint, error) {
	if _, err := geospatial.NewPoint(lat, lng); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, domain.NewValidation("radius must be positive")
	}
	if radiusMeters > MaxRadiusMeters {
		return nil, domain.NewValidation("radius must not exceed %d meters", MaxRadiusMeters)
	}
	limit = clampLimit(limit, DefaultSpatialLimit, MaxSpatialLimit)

	cacheKey := fmt.Sprintf("points:nearby:%.6f:%.6f:%.0f:%d", lat, lng, radiusMeters, limit)
	if hit := cachedNearby(ctx, s.cache, cacheKey, "nearby"); hit != nil {
		return hit, nil
	}

	start := time.Now()
	points, err := s.points.FindNearby(ctx, domain.GeoPoint{Lat: lat, Lng: lng}, radiusMeters, limit)
	if err != nil {
		return nil, err
	}
	observeSpatial("nearby", start)

	s.cacheResult(ctx, cacheKey, points)
	return points, nil
}

// FindNearest returns the K points closest to the given location,
// regardless of distance.
func (s *PointService) FindNearest(ctx context.Context, lat, lng float64, limit int) ([]domain.NearbyPoint, error) {
	if _, err := geospatial.NewPoint(lat, lng); err != nil {
		return nil, err
	}
	limit = clampLimit(limit, DefaultNearestLimit, MaxNearestLimit)

	cacheKey := fmt.Sprintf("points:nearest:%.6f:%.6f:%d", lat, lng, limit)
	if hit := cachedNearby(ctx, s.cache, cacheKey, "nearest"); hit != nil {
		return hit, nil
	}

	start := time.Now()
	points, err := s.points.FindNearest(ctx, domain.GeoPoint{Lat: lat, Lng: lng}, limit)
	if err != nil {
		return nil, err
	}
	observeSpatial("nearest", start)

	s.cacheResult(ctx, cacheKey, points)
	return points, nil
}

// FindWithinPolygon returns points contained in the given polygon, which
// must be valid WKT in WGS84.
func (s *PointService) FindWithinPolygon(ctx context.Context, polygonWKT string, limit int) ([]domain.Point, error) {
	if err := geospatial.ValidatePolygonWKT(polygonWKT); err != nil {
		return nil, err
	}
	limit = clampLimit(limit, DefaultSpatialLimit, MaxSpatialLimit)

	h := fnv.New64a()
	_, _ = h.Write([]byte(polygonWKT))
	cacheKey := fmt.Sprintf("points:within:%x:%d", h.Sum64(), limit)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var points []domain.Point
			if err := json.Unmarshal(data, &points); err == nil {
				metrics.CacheHits.WithLabelValues("within").Inc()
				return points, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("within").Inc()
	}

	start := time.Now()
	points, err := s.points.FindWithinPolygon(ctx, polygonWKT, limit)
	if err != nil {
		return nil, err
	}
	observeSpatial("within", start)

	s.cacheResult(ctx, cacheKey, points)
	return points, nil
}

func (s *PointService) checkCategory(ctx context.Context, categoryID *string) error {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	category, err := s.categories.GetByID(ctx, *categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.NewBadRequest("category %s does not exist", *categoryID)
	}
	return nil
}

func (s *PointService) cacheResult(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = s.cache.Set(ctx, key, data, spatialCacheTTL)
	}
}

// publish fires an event without letting broker trouble fail the request.
func (s *PointService) publish(event string, fn func() error) {
	if s.events == nil {
		return
	}
	if err := fn(); err != nil {
		slog.Warn("event publish failed", "event", event, "error", err)
	}
}

func cachedNearby(ctx context.Context, cache ports.CacheService, key, op string) []domain.NearbyPoint {
	if cache == nil {
		return nil
	}
	data, err := cache.Get(ctx, key)
	if err != nil || data == nil {
		metrics.CacheMisses.WithLabelValues(op).Inc()
		return nil
	}
	var points []domain.NearbyPoint
	if err := json.Unmarshal(data, &points); err != nil {
		metrics.CacheMisses.WithLabelValues(op).Inc()
		return nil
	}
	metrics.CacheHits.WithLabelValues(op).Inc()
	return points
}

func observeSpatial(kind string, start time.Time) {
	metrics.SpatialQueries.WithLabelValues(kind).Inc()
	metrics.SpatialQueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// validateName enforces the shared name policy for points and categories.
// Callers trim before calling.
func validateName(name string) error {
	if name == "" {
		return domain.NewValidation("name must not be empty")
	}
	if len(name) > MaxNameLength {
		return domain.NewValidation("name must be at most %d characters", MaxNameLength)
	}
	return nil
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
