package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categorias-api/internal/application/auth"
	"github.com/jhoicas/categorias-api/internal/application/usecase"
	"github.com/jhoicas/categorias-api/internal/infrastructure/cache"
	"github.com/jhoicas/categorias-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/categorias-api/internal/interfaces/http"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

type testServer struct {
	app      *fiber.App
	admin    string
	customer string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	categoryUC := usecase.NewCategoryUseCase(
		memory.NewCategoryRepository(store), memory.NewTxRunner(store), cache.Noop{}, log,
	)
	authUC := auth.NewAuthUseCase(memory.NewUserRepository(store), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC: categoryUC,
		AuthUC:     authUC,
		Logger:     log,
		JWTSecret:  testJWTSecret,
	})

	s := &testServer{app: app}
	_, err := authUC.EnsureAdmin(context.Background(), "admin@example.com", "Secret123")
	require.NoError(t, err)
	s.admin = s.login(t, "admin@example.com", "Secret123")
	s.customer = s.register(t, "cust@example.com", "")
	return s
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

func (s *testServer) register(t *testing.T, email, role string) string {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName": "Test", "lastName": "User", "email": email, "phone": "555",
		"dob": "1990-01-01", "gender": "Other", "password": "Secret123",
		"confirmPassword": "Secret123", "role": role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

func (s *testServer) do(t *testing.T, method, path, token string, payload any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

type categoryJSON struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Parent        *string        `json:"parent"`
	Status        string         `json:"status"`
	CreatedBy     string         `json:"createdBy"`
	Subcategories []categoryJSON `json:"subcategories"`
}

func (s *testServer) create(t *testing.T, name string, parent *string) categoryJSON {
	t.Helper()
	payload := map[string]any{"name": name}
	if parent != nil {
		payload["parent"] = *parent
	}
	resp, body := s.do(t, http.MethodPost, "/api/categories", s.admin, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out struct {
		Success  bool         `json:"success"`
		Category categoryJSON `json:"category"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.True(t, out.Success)
	return out.Category
}

func (s *testServer) tree(t *testing.T) []categoryJSON {
	t.Helper()
	resp, body := s.do(t, http.MethodGet, "/api/categories", s.customer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out struct {
		Categories []categoryJSON `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Categories
}

func TestRoot_Banner(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Equal(t, "<h1>Multi-Level Category Management API</h1>", string(body))
}

func TestRutaDesconocida_404(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodGet, "/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"message":"Not Found - /nope"}`, string(body))
}

func TestCategories_SinToken401(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodGet, "/api/categories", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestCategories_CustomerNoPuedeMutar(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.do(t, http.MethodPost, "/api/categories", s.customer, map[string]any{"name": "X"})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCategories_CrearYListarArbol(t *testing.T) {
	s := newTestServer(t)
	root := s.create(t, "Electronics", nil)
	child := s.create(t, "Phones", &root.ID)
	s.create(t, "Books", nil)

	assert.Nil(t, root.Parent)
	assert.Equal(t, "active", root.Status)
	require.NotNil(t, child.Parent)
	assert.Equal(t, root.ID, *child.Parent)

	tree := s.tree(t)
	require.Len(t, tree, 2)
	assert.Equal(t, "Electronics", tree[0].Name)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Equal(t, child.ID, tree[0].Subcategories[0].ID)
	assert.NotNil(t, tree[1].Subcategories)
}

func TestCategories_ArbolVacio(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodGet, "/api/categories", s.customer, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"categories":[]}`, string(body))
}

func TestCategories_CrearDuplicado400(t *testing.T) {
	s := newTestServer(t)
	s.create(t, "Electronics", nil)

	resp, body := s.do(t, http.MethodPost, "/api/categories", s.admin, map[string]any{"name": "Electronics"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"code":"DUPLICATE","message":"Category already exists"}`, string(body))
}

func TestCategories_CrearSinNombre400(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodPost, "/api/categories", s.admin, map[string]any{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "name is required")
}

func TestCategories_ActualizarRenombreDuplicado(t *testing.T) {
	s := newTestServer(t)
	s.create(t, "Electronics", nil)
	b := s.create(t, "Books", nil)

	resp, body := s.do(t, http.MethodPut, "/api/categories/"+b.ID, s.admin, map[string]any{"name": "ELECTRONICS"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "Category name already exists")

	resp, body = s.do(t, http.MethodPut, "/api/categories/"+b.ID, s.admin, map[string]any{"name": "Novels", "status": "inactive"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"name":"Novels"`)
	assert.Contains(t, string(body), `"status":"inactive"`)
}

func TestCategories_ActualizarInexistente404(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodPut, "/api/categories/"+uuid.New().String(), s.admin, map[string]any{"name": "X"})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "Category not found")
}

func TestCategories_IDMalformado400(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.do(t, http.MethodGet, "/api/categories/123", s.customer, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCategories_BulkUpdateNoSeCapturaComoID(t *testing.T) {
	s := newTestServer(t)
	a := s.create(t, "A", nil)
	b := s.create(t, "B", nil)

	resp, body := s.do(t, http.MethodPut, "/api/categories/bulk-update", s.admin, map[string]any{
		"categoryIds": []string{a.ID, b.ID},
		"status":      "inactive",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"modifiedCount":2`)
}

func TestCategories_BulkUpdateEntradaInvalida(t *testing.T) {
	s := newTestServer(t)

	for _, payload := range []map[string]any{
		{"categoryIds": []string{}, "status": "inactive"},
		{"categoryIds": []string{uuid.New().String()}},
	} {
		resp, body := s.do(t, http.MethodPut, "/api/categories/bulk-update", s.admin, payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(body), "Invalid request data")
	}
}

func TestCategories_BorrarReasignaHijos(t *testing.T) {
	s := newTestServer(t)
	a := s.create(t, "A", nil)
	b := s.create(t, "B", &a.ID)
	c := s.create(t, "C", &b.ID)

	resp, body := s.do(t, http.MethodDelete, "/api/categories/"+b.ID, s.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	tree := s.tree(t)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Equal(t, c.ID, tree[0].Subcategories[0].ID)

	resp, _ = s.do(t, http.MethodDelete, "/api/categories/"+b.ID, s.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategories_CascadaDeEstado(t *testing.T) {
	s := newTestServer(t)
	a := s.create(t, "A", nil)
	b := s.create(t, "B", &a.ID)
	s.create(t, "C", &b.ID)

	resp, body := s.do(t, http.MethodPut, "/api/categories/"+a.ID+"/status", s.admin, map[string]any{"status": "inactive"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"modifiedCount":3`)

	tree := s.tree(t)
	assert.Equal(t, "inactive", tree[0].Status)
	assert.Equal(t, "inactive", tree[0].Subcategories[0].Subcategories[0].Status)

	resp, _ = s.do(t, http.MethodPut, "/api/categories/"+a.ID+"/status", s.admin, map[string]any{"status": "paused"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuth_LoginDejaCookie(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "admin@example.com", "password": "Secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var jwtCookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.CookieName {
			jwtCookie = ck
		}
	}
	require.NotNil(t, jwtCookie)
	assert.True(t, jwtCookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, jwtCookie.SameSite)
	assert.Equal(t, 86400, jwtCookie.MaxAge)

	resp, body = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "admin@example.com", "password": "Wrong1234",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "Invalid email or password.")
}

func TestAuth_MeYDashboard(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/api/auth/me", s.customer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "cust@example.com")

	resp, _ = s.do(t, http.MethodGet, "/api/auth/admin/dashboard", s.customer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/api/auth/admin/dashboard", s.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Welcome to the Admin Dashboard")
}

func TestAuth_RegistroEmailDuplicado(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName": "T", "lastName": "U", "email": "ADMIN@example.com", "phone": "1",
		"dob": "01-01-1990", "gender": "Male", "password": "Secret123", "confirmPassword": "Secret123",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "EMAIL_EXISTS")
}

func TestAuth_RegistroComoAdminRechazado(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName": "Eve", "lastName": "X", "email": "eve@example.com", "phone": "1",
		"dob": "01-01-1990", "gender": "Female", "password": "Secret123", "confirmPassword": "Secret123",
		"role": "Admin",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "Admin accounts cannot be self-registered.")

	resp, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "eve@example.com", "password": "Secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
