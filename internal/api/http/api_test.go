package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/catalog-service/internal/api/http"
	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	authpkg "github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/internal/persistence"
	"github.com/spec-kit/catalog-service/internal/service"
)

// --- in-memory repository fakes -------------------------------------------

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins []domain.Admin
}

func (r *fakeAdminRepo) Upsert(_ context.Context, admin *domain.Admin) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if existing.Username == admin.Username {
			return false, nil
		}
	}
	admin.ID = uuid.NewString()
	admin.CreatedAt = time.Now()
	r.admins = append(r.admins, *admin)
	return true, nil
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.ID == id {
			clone := admin
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.Username == username {
			clone := admin
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAdminRepo) List(_ context.Context) ([]domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Admin{}, r.admins...), nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services []domain.Service
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc.ID = uuid.NewString()
	svc.CreatedAt = time.Now()
	r.services = append(r.services, *svc)
	return nil
}

func (r *fakeServiceRepo) List(_ context.Context) ([]domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Service{}, r.services...), nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests []domain.Request
}

func (r *fakeRequestRepo) Create(_ context.Context, request *domain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.ID = uuid.NewString()
	request.RequestDate = time.Now()
	request.Status = domain.RequestStatusPending
	r.requests = append(r.requests, *request)
	return nil
}

func (r *fakeRequestRepo) List(_ context.Context) ([]domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Request{}, r.requests...), nil
}

func (r *fakeRequestRepo) ListByUsername(_ context.Context, username string) ([]domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Request
	for _, request := range r.requests {
		if request.Username == username {
			result = append(result, request)
		}
	}
	return result, nil
}

func (r *fakeRequestRepo) UpdateStatus(_ context.Context, id, status string) (*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests[i].Status = status
			clone := r.requests[i]
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// --- harness ---------------------------------------------------------------

type testEnv struct {
	app      *fiber.App
	users    *fakeUserRepo
	admins   *fakeAdminRepo
	services *fakeServiceRepo
	requests *fakeRequestRepo
	tokens   *authpkg.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}

	users := newFakeUserRepo()
	admins := &fakeAdminRepo{}
	services := &fakeServiceRepo{}
	requests := &fakeRequestRepo{}

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:  users,
		AdminRepo: admins,
	})
	dispatcher := events.NewInMemoryDispatcher()
	catalogService := service.NewCatalogService(services)
	requestService := service.NewRequestService(requests, dispatcher)
	adminService := service.NewAdminService(admins, bcrypt.MinCost)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:       handlers.NewAuthHandler(authService),
		Services:   handlers.NewServicesHandler(catalogService),
		Requests:   handlers.NewRequestsHandler(requestService),
		Admin:      handlers.NewAdminHandler(authService, adminService),
		AdminGuard: authpkg.NewAdminGuard(authService.TokenManager()),
	})

	return &testEnv{
		app:      app,
		users:    users,
		admins:   admins,
		services: services,
		requests: requests,
		tokens:   authService.TokenManager(),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return resp, decoded
}

func (e *testEnv) doList(t *testing.T, path string) (*http.Response, []map[string]any) {
	t.Helper()
	resp, _ := e.do(t, http.MethodGet, path, nil)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

// --- tests -----------------------------------------------------------------

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	t.Run("CreatesAccount", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/auth/register",
			fiber.Map{"username": "alice", "password": "p1", "role": "user"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.NotEmpty(t, user["id"])
		assert.Equal(t, "alice", user["username"])
		assert.Equal(t, "user", user["role"])
	})

	t.Run("DuplicateUsernameConflicts", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/auth/register",
			fiber.Map{"username": "alice", "password": "p2", "role": "user"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Username already exists", body["error"])
	})

	t.Run("MissingFieldRejected", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPost, "/api/auth/register",
			fiber.Map{"username": "bob", "password": "p1"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("AnyNonEmptyRoleAccepted", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPost, "/api/auth/register",
			fiber.Map{"username": "carol", "password": "p1", "role": "superuser"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, http.MethodPost, "/api/auth/register",
		fiber.Map{"username": "alice", "password": "p1", "role": "user"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("Success", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/auth/login",
			fiber.Map{"username": "alice", "password": "p1"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "alice", body["username"])
		assert.NotEmpty(t, body["token"])
	})

	t.Run("TokenClaimsMatchStoreRow", func(t *testing.T) {
		_, body := env.do(t, http.MethodPost, "/api/auth/login",
			fiber.Map{"username": "alice", "password": "p1"})
		token, _ := body["token"].(string)
		require.NotEmpty(t, token)

		claims, err := env.tokens.ParseToken(token)
		require.NoError(t, err)

		stored, err := env.users.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, claims.ID)
		assert.Equal(t, stored.Username, claims.Username)
		assert.Equal(t, stored.Role, claims.Role)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	})

	t.Run("WrongPasswordMatchesUnknownUser", func(t *testing.T) {
		wrongResp, wrongBody := env.do(t, http.MethodPost, "/api/auth/login",
			fiber.Map{"username": "alice", "password": "wrong"})
		missingResp, missingBody := env.do(t, http.MethodPost, "/api/auth/login",
			fiber.Map{"username": "nobody", "password": "p1"})

		assert.Equal(t, http.StatusUnauthorized, wrongResp.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, missingResp.StatusCode)
		assert.Equal(t, map[string]any{"error": "Invalid username or password"}, wrongBody)
		assert.Equal(t, wrongBody, missingBody)
	})
}

func TestServiceCatalog(t *testing.T) {
	env := newTestEnv(t)

	t.Run("RequiresCategoryAndName", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPost, "/api/services", fiber.Map{"name": "Plumbing"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("AddThenListOne", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/services", fiber.Map{
			"category":    "home",
			"name":        "Plumbing",
			"price":       "49.99",
			"imageUrl":    "https://img.example/p.png",
			"description": "Fix leaks",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created, ok := body["service"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "home", created["category"])

		listResp, list := env.doList(t, "/api/services")
		require.Equal(t, http.StatusOK, listResp.StatusCode)
		require.Len(t, list, 1)
		assert.Equal(t, "Plumbing", list[0]["name"])
		assert.Equal(t, "49.99", list[0]["price"])
		assert.Equal(t, "https://img.example/p.png", list[0]["imageUrl"])
		assert.Equal(t, "Fix leaks", list[0]["description"])
	})

	t.Run("OptionalFieldsNullable", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/services", fiber.Map{
			"category": "garden",
			"name":     "Mowing",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created := body["service"].(map[string]any)
		assert.Nil(t, created["price"])
		assert.Nil(t, created["imageUrl"])
		assert.Nil(t, created["description"])
	})
}

func TestRequests(t *testing.T) {
	env := newTestEnv(t)

	t.Run("MissingQuantityRejectedAndNoRowCreated", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPost, "/api/requests",
			fiber.Map{"username": "alice", "product_name": "widget"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		rows, err := env.requests.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("ZeroQuantityRejected", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPost, "/api/requests",
			fiber.Map{"username": "alice", "product_name": "widget", "quantity": 0})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("SubmitDefaultsToPending", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/requests",
			fiber.Map{"username": "alice", "product_name": "widget", "quantity": 2})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		request, ok := body["request"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Pending", request["status"])
		assert.Equal(t, float64(2), request["quantity"])
	})

	t.Run("ListAllIsUnauthenticated", func(t *testing.T) {
		resp, list := env.doList(t, "/api/requests")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, list, 1)
	})

	t.Run("ListByUsername", func(t *testing.T) {
		resp, list := env.doList(t, "/api/requests/alice")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, list, 1)
		assert.Equal(t, "alice", list[0]["username"])

		emptyResp, empty := env.doList(t, "/api/requests/nobody")
		require.Equal(t, http.StatusOK, emptyResp.StatusCode)
		assert.Empty(t, empty)
	})

	t.Run("PatchStatus", func(t *testing.T) {
		rows, err := env.requests.List(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)

		resp, body := env.do(t, http.MethodPatch, "/api/requests/"+rows[0].ID,
			fiber.Map{"status": "Approved"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		request := body["request"].(map[string]any)
		assert.Equal(t, "Approved", request["status"])
	})

	t.Run("PatchMissingStatusRejected", func(t *testing.T) {
		rows, err := env.requests.List(context.Background())
		require.NoError(t, err)

		resp, _ := env.do(t, http.MethodPatch, "/api/requests/"+rows[0].ID, fiber.Map{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("PatchNonexistentIsNotFoundAndTableUnchanged", func(t *testing.T) {
		before, err := env.requests.List(context.Background())
		require.NoError(t, err)

		resp, _ := env.do(t, http.MethodPatch, "/api/requests/"+uuid.NewString(),
			fiber.Map{"status": "Approved"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		after, err := env.requests.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("PatchMalformedIdIsNotFound", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPatch, "/api/requests/not-a-uuid",
			fiber.Map{"status": "Approved"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminManagement(t *testing.T) {
	env := newTestEnv(t)

	t.Run("AddIsUpsertIgnore", func(t *testing.T) {
		first, firstBody := env.do(t, http.MethodPost, "/api/admin/add",
			fiber.Map{"username": "root", "password": "secret"})
		require.Equal(t, http.StatusOK, first.StatusCode)
		assert.Equal(t, "Admin added successfully", firstBody["message"])

		second, secondBody := env.do(t, http.MethodPost, "/api/admin/add",
			fiber.Map{"username": "root", "password": "other"})
		assert.Equal(t, http.StatusOK, second.StatusCode)
		assert.Equal(t, firstBody, secondBody)

		admins, err := env.admins.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, admins, 1)
	})

	t.Run("LoginAndProfile", func(t *testing.T) {
		loginResp, loginBody := env.do(t, http.MethodPost, "/api/admin/login",
			fiber.Map{"username": "root", "password": "secret"})
		require.Equal(t, http.StatusOK, loginResp.StatusCode)
		token, _ := loginBody["token"].(string)
		require.NotEmpty(t, token)

		profileResp, profile := env.do(t, http.MethodGet, "/api/admin/profile", nil,
			"Authorization", "Bearer "+token)
		require.Equal(t, http.StatusOK, profileResp.StatusCode)
		assert.Equal(t, "root", profile["username"])
		assert.Equal(t, "admin", profile["role"])
		assert.NotEmpty(t, profile["id"])
	})

	t.Run("ProfileWithoutTokenUnauthorized", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodGet, "/api/admin/profile", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ProfileForUnknownAdminNotFound", func(t *testing.T) {
		token, _, err := env.tokens.GenerateToken(uuid.NewString(), "ghost", "admin")
		require.NoError(t, err)

		resp, _ := env.do(t, http.MethodGet, "/api/admin/profile", nil,
			"Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("LoginBadPasswordConstantResponse", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/admin/login",
			fiber.Map{"username": "root", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid username or password", body["error"])
	})

	t.Run("ListAllIsUnauthenticated", func(t *testing.T) {
		resp, list := env.doList(t, "/api/admin/all")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, list, 1)
		assert.Equal(t, "root", list[0]["username"])
		// password hashes never leave the store projection
		_, exposed := list[0]["password_hash"]
		assert.False(t, exposed)
	})
}
