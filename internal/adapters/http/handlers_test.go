package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	handler "github.com/waheedridwan/geopoints/internal/adapters/http"
	"github.com/waheedridwan/geopoints/internal/core/domain"
	"github.com/waheedridwan/geopoints/internal/core/ports"
	"github.com/waheedridwan/geopoints/internal/core/usecases"
	"github.com/waheedridwan/geopoints/internal/pkg/auth"
	"github.com/waheedridwan/geopoints/internal/pkg/ratelimit"
)

// ---- Mock repositories ----

type mockPointRepo struct {
	createFn      func(ctx context.Context, in domain.PointCreate) (*domain.Point, error)
	getByIDFn     func(ctx context.Context, id string) (*domain.Point, error)
	listFn        func(ctx context.Context, offset, limit int) ([]domain.Point, error)
	updateFn      func(ctx context.Context, id string, patch domain.PointPatch) (*domain.Point, error)
	deleteFn      func(ctx context.Context, id string) (bool, error)
	countFn       func(ctx context.Context, categoryID *string) (int, error)
	findNearbyFn  func(ctx context.Context, center domain.GeoPoint, radius float64, limit int) ([]domain.NearbyPoint, error)
	findNearestFn func(ctx context.Context, center domain.GeoPoint, limit int) ([]domain.NearbyPoint, error)
	findWithinFn  func(ctx context.Context, wkt string, limit int) ([]domain.Point, error)
}

func (m *mockPointRepo) Create(ctx context.Context, in domain.PointCreate) (*domain.Point, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return &domain.Point{ID: uuid.NewString(), Name: in.Name,
		Location: domain.GeoPoint{Lat: in.Latitude, Lng: in.Longitude}}, nil
}
func (m *mockPointRepo) GetByID(ctx context.Context, id string) (*domain.Point, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockPointRepo) List(ctx context.Context, offset, limit int) ([]domain.Point, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, nil
}
func (m *mockPointRepo) ListByCategory(ctx context.Context, categoryID string, offset, limit int) ([]domain.Point, error) {
	return nil, nil
}
func (m *mockPointRepo) Update(ctx context.Context, id string, patch domain.PointPatch) (*domain.Point, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, nil
}
func (m *mockPointRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}
func (m *mockPointRepo) Count(ctx context.Context, categoryID *string) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, categoryID)
	}
	return 0, nil
}
func (m *mockPointRepo) FindNearby(ctx context.Context, center domain.GeoPoint, radius float64, limit int) ([]domain.NearbyPoint, error) {
	if m.findNearbyFn != nil {
		return m.findNearbyFn(ctx, center, radius, limit)
	}
	return nil, nil
}
func (m *mockPointRepo) FindNearest(ctx context.Context, center domain.GeoPoint, limit int) ([]domain.NearbyPoint, error) {
	if m.findNearestFn != nil {
		return m.findNearestFn(ctx, center, limit)
	}
	return nil, nil
}
func (m *mockPointRepo) FindWithinPolygon(ctx context.Context, wkt string, limit int) ([]domain.Point, error) {
	if m.findWithinFn != nil {
		return m.findWithinFn(ctx, wkt, limit)
	}
	return nil, nil
}
func (m *mockPointRepo) ClearCategory(ctx context.Context, categoryID string) error { return nil }

type mockCategoryRepo struct {
	createFn     func(ctx context.Context, in domain.CategoryCreate) (*domain.Category, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.Category, error)
	listFn       func(ctx context.Context, offset, limit int) ([]domain.Category, error)
	nameExistsFn func(ctx context.Context, name, excludeID string) (bool, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, in domain.CategoryCreate) (*domain.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return &domain.Category{ID: uuid.NewString(), Name: in.Name}, nil
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockCategoryRepo) List(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, nil
}
func (m *mockCategoryRepo) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	return nil, nil
}
func (m *mockCategoryRepo) Delete(ctx context.Context, id string) (bool, error) { return false, nil }
func (m *mockCategoryRepo) Count(ctx context.Context) (int, error)              { return 0, nil }
func (m *mockCategoryRepo) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	if m.nameExistsFn != nil {
		return m.nameExistsFn(ctx, name, excludeID)
	}
	return false, nil
}

// memUserRepo is a thread-safe in-memory user store, enough to run the
// register/login flows end to end.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (m *memUserRepo) Create(ctx context.Context, email, username, hashed string, active, super bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &domain.User{
		ID: uuid.NewString(), Email: email, Username: username,
		HashedPassword: hashed, IsActive: active, IsSuperuser: super,
		CreatedAt: time.Now(),
	}
	m.users[u.ID] = u
	return u, nil
}
func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}
func (m *memUserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(login) || u.Username == login {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []domain.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}
func (m *memUserRepo) Update(ctx context.Context, id string, patch domain.UserStorePatch) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	if u == nil {
		return nil, nil
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.HashedPassword != nil {
		u.HashedPassword = *patch.HashedPassword
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.IsSuperuser != nil {
		u.IsSuperuser = *patch.IsSuperuser
	}
	return u, nil
}
func (m *memUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}
func (m *memUserRepo) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}
func (m *memUserRepo) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
func (m *memUserRepo) UsernameExists(ctx context.Context, username, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
func (m *memUserRepo) UpdateLastLogin(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	if u == nil {
		return nil, nil
	}
	now := time.Now()
	u.LastLogin = &now
	return u, nil
}

type mockUnitOfWork struct {
	points     ports.PointRepository
	categories ports.CategoryRepository
	users      ports.UserRepository
}

func (m *mockUnitOfWork) Do(ctx context.Context, fn func(r ports.Repositories) error) error {
	return fn(m)
}
func (m *mockUnitOfWork) Points() ports.PointRepository        { return m.points }
func (m *mockUnitOfWork) Categories() ports.CategoryRepository { return m.categories }
func (m *mockUnitOfWork) Users() ports.UserRepository          { return m.users }

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	hasher := auth.NewHasher(4) // minimum bcrypt cost keeps the suite fast
	tokens := auth.NewTokenManager("test-secret", time.Hour, auth.NewMemoryBlacklist())
	categories := &mockCategoryRepo{}

	d := &handler.Dependencies{
		Points:     usecases.NewPointService(&mockPointRepo{}, categories, nil, nil),
		Categories: usecases.NewCategoryService(categories, &mockUnitOfWork{points: &mockPointRepo{}, categories: categories}, nil),
		Users:      usecases.NewUserService(newMemUserRepo(), hasher, tokens),
		Limiter:    ratelimit.New(),
		Policy:     ratelimit.DefaultPolicy(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// registerAndLogin creates an account through the API and returns a live
// bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	body := fmt.Sprintf(`{"email":%q,"username":%q,"password":"secret-password"}`,
		username+"@example.com", username)
	req := httptest.NewRequest("POST", "/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	form := fmt.Sprintf("username=%s&password=secret-password", username)
	req = httptest.NewRequest("POST", "/v1/auth/token", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("token: expected 200, got %d", resp.StatusCode)
	}

	var token domain.Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		t.Fatal(err)
	}
	if token.AccessToken == "" {
		t.Fatal("empty access token")
	}
	return token.AccessToken
}

// ---- Point handler tests ----

func TestListPoints_Envelope(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Points = usecases.NewPointService(&mockPointRepo{
			listFn: func(ctx context.Context, offset, limit int) ([]domain.Point, error) {
				return []domain.Point{{ID: "p1", Name: "Guggenheim"}, {ID: "p2", Name: "Casco Viejo"}}, nil
			},
			countFn: func(ctx context.Context, categoryID *string) (int, error) { return 42, nil },
		}, &mockCategoryRepo{}, nil, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/points?page=1&limit=20", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data []domain.Point `json:"data"`
		Meta struct {
			Total int `json:"total"`
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Pages int `json:"pages"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 points, got %d", len(result.Data))
	}
	if result.Meta.Total != 42 || result.Meta.Pages != 3 {
		t.Errorf("expected total 42 over 3 pages, got %+v", result.Meta)
	}
	if link := resp.Header.Get("Link"); !strings.Contains(link, `rel="next"`) {
		t.Errorf("expected a next link header, got %q", link)
	}
}

func TestNearbyPoints_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Points = usecases.NewPointService(&mockPointRepo{
			findNearbyFn: func(ctx context.Context, center domain.GeoPoint, radius float64, limit int) ([]domain.NearbyPoint, error) {
				return []domain.NearbyPoint{
					{Point: domain.Point{ID: "p1", Name: "Guggenheim"}, Distance: 120.5},
				}, nil
			},
		}, &mockCategoryRepo{}, nil, nil)
	})
	app := setupApp(deps)

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/points/nearby?lat=43.2687&lng=-2.9340&radius=500", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var points []domain.NearbyPoint
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		t.Fatal(err)
	}
	if len(points) != 1 || points[0].Distance != 120.5 {
		t.Errorf("expected one point with distance, got %+v", points)
	}
}

func TestNearbyPoints_MissingParams(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/points/nearby", nil), -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Status int    `json:"status"`
		Code   string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "bad_request" {
		t.Errorf("expected bad_request error, got %s", apiErr.Code)
	}
}

func TestNearbyPoints_OversizedRadius(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/points/nearby?lat=43.26&lng=-2.93&radius=200000", nil), -1)
	if resp.StatusCode != 422 {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestNearestPoints_Ordered(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Points = usecases.NewPointService(&mockPointRepo{
			findNearestFn: func(ctx context.Context, center domain.GeoPoint, limit int) ([]domain.NearbyPoint, error) {
				return []domain.NearbyPoint{
					{Point: domain.Point{ID: "a"}, Distance: 10},
					{Point: domain.Point{ID: "b"}, Distance: 22},
					{Point: domain.Point{ID: "c"}, Distance: 31},
				}, nil
			},
		}, &mockCategoryRepo{}, nil, nil)
	})
	app := setupApp(deps)

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/points/nearest?lat=43.26&lng=-2.93&limit=3", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var points []domain.NearbyPoint
	json.NewDecoder(resp.Body).Decode(&points)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Distance < points[i-1].Distance {
			t.Errorf("results out of order at %d: %+v", i, points)
		}
	}
}

func TestWithinPolygon_BadWKT(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("POST", "/v1/points/within?polygon=CIRCLE(0+0,1)", nil), -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetPoint_NotFound(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/points/ghost", nil), -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Code string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "not_found" {
		t.Errorf("expected not_found, got %s", apiErr.Code)
	}
}

func TestCreatePoint_RequiresAuth(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/points",
		strings.NewReader(`{"name":"Guggenheim","latitude":43.2687,"longitude":-2.934}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if resp.Header.Get("WWW-Authenticate") != "Bearer" {
		t.Error("expected WWW-Authenticate: Bearer header")
	}
}

// Register, log in, create a point, and find it nearby: the full happy path.
func TestRegisterLoginCreateNearby(t *testing.T) {
	var created *domain.Point
	points := &mockPointRepo{
		createFn: func(ctx context.Context, in domain.PointCreate) (*domain.Point, error) {
			created = &domain.Point{ID: uuid.NewString(), Name: in.Name,
				Location: domain.GeoPoint{Lat: in.Latitude, Lng: in.Longitude}}
			return created, nil
		},
		findNearbyFn: func(ctx context.Context, center domain.GeoPoint, radius float64, limit int) ([]domain.NearbyPoint, error) {
			if created == nil {
				return nil, nil
			}
			return []domain.NearbyPoint{{Point: *created, Distance: 42}}, nil
		},
	}
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Points = usecases.NewPointService(points, &mockCategoryRepo{}, nil, nil)
	})
	app := setupApp(deps)

	token := registerAndLogin(t, app, "ada")

	req := httptest.NewRequest("POST", "/v1/points",
		strings.NewReader(`{"name":"Guggenheim","latitude":43.2687,"longitude":-2.934}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/v1/points/nearby?lat=43.2687&lng=-2.934&radius=500", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("nearby: expected 200, got %d", resp.StatusCode)
	}
	var nearby []domain.NearbyPoint
	json.NewDecoder(resp.Body).Decode(&nearby)
	if len(nearby) != 1 || nearby[0].Name != "Guggenheim" {
		t.Errorf("expected the created point nearby, got %+v", nearby)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	app := setupApp(makeDeps())
	token := registerAndLogin(t, app, "ada")

	req := httptest.NewRequest("POST", "/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

// ---- Category handler tests ----

func TestCreateCategory_Duplicate(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Categories = usecases.NewCategoryService(&mockCategoryRepo{
			nameExistsFn: func(ctx context.Context, name, excludeID string) (bool, error) { return true, nil },
		}, nil, nil)
	})
	app := setupApp(deps)
	token := registerAndLogin(t, app, "ada")

	req := httptest.NewRequest("POST", "/v1/categories", strings.NewReader(`{"name":"Museums"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 409 {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "conflict" || !strings.Contains(apiErr.Message, "already exists") {
		t.Errorf("expected conflict/already exists, got %+v", apiErr)
	}
}

// ---- Rate limiting ----

func TestRateLimit_RejectsOverBudget(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.RateLimitEnabled = true
		d.Policy = ratelimit.Policy{Default: ratelimit.Tier{Limit: 2, Window: time.Minute}}
	})
	app := setupApp(deps)

	for i := 0; i < 2; i++ {
		resp, _ := app.Test(httptest.NewRequest("GET", "/v1/points", nil), -1)
		if resp.StatusCode != 200 {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/points", nil), -1)
	if resp.StatusCode != 429 {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if resp.Header.Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("expected zero remaining, got %q", resp.Header.Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimit_HeadersOnSuccess(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.RateLimitEnabled = true
	})
	app := setupApp(deps)

	resp, _ := app.Test(httptest.NewRequest("GET", "/v1/points", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-RateLimit-Limit") != "100" {
		t.Errorf("expected limit 100, got %q", resp.Header.Get("X-RateLimit-Limit"))
	}
	if resp.Header.Get("X-RateLimit-Remaining") != "99" {
		t.Errorf("expected 99 remaining, got %q", resp.Header.Get("X-RateLimit-Remaining"))
	}
}

func TestSetupRoutes_CustomRequestTimeout(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.RequestTimeout = 2 * time.Second
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/points", nil), -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 under a custom deadline, got %d", resp.StatusCode)
	}
}
