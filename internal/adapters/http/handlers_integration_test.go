//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	handler "github.com/waheedridwan/geopoints/internal/adapters/http"
	"github.com/waheedridwan/geopoints/internal/adapters/postgres"
	"github.com/waheedridwan/geopoints/internal/core/domain"
	"github.com/waheedridwan/geopoints/internal/core/usecases"
	"github.com/waheedridwan/geopoints/internal/pkg/auth"
	"github.com/waheedridwan/geopoints/internal/pkg/config"
)

// setupTestDB connects to the test database configured through the usual
// GEOPOINTS_ environment variables.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("geopoints-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	db := &postgres.DB{Pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	return db
}

// setupIntegrationDeps creates dependencies with real repos, no cache or broker.
func setupIntegrationDeps(t *testing.T, db *postgres.DB) *handler.Dependencies {
	pointRepo := postgres.NewPointRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	userRepo := postgres.NewUserRepo(db)

	hasher := auth.NewHasher(4)
	tokens := auth.NewTokenManager("integration-secret", time.Hour, auth.NewMemoryBlacklist())

	return &handler.Dependencies{
		Points:     usecases.NewPointService(pointRepo, categoryRepo, nil, nil),
		Categories: usecases.NewCategoryService(categoryRepo, db, nil),
		Users:      usecases.NewUserService(userRepo, hasher, tokens),
		DB:         db,
	}
}

// seedCategory inserts a category and returns its UUID.
func seedCategory(t *testing.T, db *postgres.DB, name string) string {
	ctx := context.Background()
	var id string
	if err := db.Pool.QueryRow(ctx, `
		INSERT INTO categories (name, color)
		VALUES ($1, '#3366FF')
		ON CONFLICT (lower(name)) DO UPDATE SET color = EXCLUDED.color
		RETURNING id
	`, name).Scan(&id); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return id
}

// seedPoint inserts a point at the given location and returns its UUID.
func seedPoint(t *testing.T, db *postgres.DB, name string, lat, lng float64, categoryID string) string {
	ctx := context.Background()
	var id string
	if err := db.Pool.QueryRow(ctx, `
		INSERT INTO points (name, location, category_id)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography, NULLIF($4, '')::uuid)
		RETURNING id
	`, name, lng, lat, categoryID).Scan(&id); err != nil {
		t.Fatalf("seed point: %v", err)
	}
	return id
}

// TestNearbyPoints_Integration runs the radius query against real PostGIS.
func TestNearbyPoints_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	suffix := time.Now().Format("20060102150405")
	// Guggenheim Bilbao: 43.2687, -2.9340
	near := seedPoint(t, db, "near_"+suffix, 43.2687, -2.9340, "")
	seedPoint(t, db, "far_"+suffix, 43.3500, -3.0100, "")

	deps := setupIntegrationDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/points/nearby?lat=43.2690&lng=-2.9345&radius=500", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var points []domain.NearbyPoint
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	found := false
	for _, p := range points {
		if p.ID == near {
			found = true
			if p.Distance <= 0 || p.Distance > 500 {
				t.Errorf("distance out of range: %f", p.Distance)
			}
		}
		if strings.HasPrefix(p.Name, "far_") {
			t.Errorf("point outside the radius returned: %s", p.Name)
		}
	}
	if !found {
		t.Error("seeded point not found within 500m")
	}
}

// TestNearestPoints_Integration checks KNN ordering against real PostGIS.
func TestNearestPoints_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	suffix := time.Now().Format("20060102150405")
	seedPoint(t, db, "knn_a_"+suffix, 43.2687, -2.9340, "")
	seedPoint(t, db, "knn_b_"+suffix, 43.2800, -2.9500, "")

	deps := setupIntegrationDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/points/nearest?lat=43.2687&lng=-2.9340&limit=5", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var points []domain.NearbyPoint
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("expected at least 1 nearest point")
	}
	for i := 1; i < len(points); i++ {
		if points[i].Distance < points[i-1].Distance {
			t.Errorf("results not ordered by distance at index %d", i)
		}
	}
}

// TestCreatePoint_Integration registers a user and creates a point through
// the full stack.
func TestCreatePoint_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	deps := setupIntegrationDeps(t, db)
	app := setupApp(deps)

	suffix := time.Now().Format("20060102150405")
	token := registerAndLogin(t, app, "integ_"+suffix)

	categoryID := seedCategory(t, db, "Museums_"+suffix)

	body := fmt.Sprintf(
		`{"name":"Museo_%s","latitude":43.2603,"longitude":-2.9334,"category_id":%q}`,
		suffix, categoryID)
	req := httptest.NewRequest("POST", "/v1/points", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var point domain.Point
	if err := json.NewDecoder(resp.Body).Decode(&point); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if point.Category == nil || point.Category.ID != categoryID {
		t.Errorf("expected category %s embedded, got %+v", categoryID, point.Category)
	}
	if point.Location.Lat != 43.2603 || point.Location.Lng != -2.9334 {
		t.Errorf("location mismatch: %+v", point.Location)
	}
}
