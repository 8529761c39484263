package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	apphttp "github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/interfaces/http"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/pkg/logger"
)

// ── Fake de catálogo ──────────────────────────────────────────────────────────

type fakeCategories struct {
	items     map[string]dto.CategoryResponse
	companies []string
	lastPage  dto.PageRequest
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{items: map[string]dto.CategoryResponse{}}
}

func (f *fakeCategories) Create(_ context.Context, companyID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	f.companies = append(f.companies, companyID)
	for _, it := range f.items {
		if it.Name == in.Name {
			return nil, domain.ErrDuplicate
		}
	}
	out := dto.CategoryResponse{ID: fmt.Sprintf("cat-%d", len(f.items)+1), Name: in.Name, Description: in.Description}
	f.items[out.ID] = out
	return &out, nil
}

func (f *fakeCategories) Get(_ context.Context, companyID, id string) (*dto.CategoryResponse, error) {
	f.companies = append(f.companies, companyID)
	it, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (f *fakeCategories) Update(ctx context.Context, companyID, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	it, err := f.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	it.Name = in.Name
	f.items[id] = *it
	return it, nil
}

func (f *fakeCategories) List(_ context.Context, companyID string, page dto.PageRequest) ([]dto.CategoryResponse, error) {
	f.companies = append(f.companies, companyID)
	f.lastPage = page
	out := make([]dto.CategoryResponse, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeCategories) Delete(_ context.Context, companyID, id string) error {
	f.companies = append(f.companies, companyID)
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func buildCatalogApp(uc *fakeCategories) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop(), true)})
	g := app.Group("/api/categories", apphttp.AuthMiddleware(testJWTSecret))
	apphttp.NewCatalogHandler[dto.CategoryRequest, dto.CategoryResponse](uc).Mount(g)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body, role string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+signToken(t, role, 60))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var e dto.ErrorResponse
	if resp.StatusCode >= 400 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	}
	return resp, e
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCatalogHandler_CRUD(t *testing.T) {
	uc := newFakeCategories()
	app := buildCatalogApp(uc)

	resp, _ := send(t, app, http.MethodPost, "/api/categories", `{"name":"Boissons"}`, "admin")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CategoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Boissons", created.Name)

	resp, _ = send(t, app, http.MethodGet, "/api/categories/"+created.ID, "", "seller")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = send(t, app, http.MethodPut, "/api/categories/"+created.ID, `{"name":"Épicerie"}`, "admin")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = send(t, app, http.MethodGet, "/api/categories?limit=5&offset=10", "", "admin")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.PageRequest{Limit: 5, Offset: 10}, uc.lastPage)

	resp, _ = send(t, app, http.MethodDelete, "/api/categories/"+created.ID, "", "admin")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// La empresa siempre sale del token.
	for _, c := range uc.companies {
		assert.Equal(t, testCompanyID, c)
	}
}

func TestCatalogHandler_MapeoDeErrores(t *testing.T) {
	uc := newFakeCategories()
	app := buildCatalogApp(uc)

	resp, e := send(t, app, http.MethodGet, "/api/categories/nope", "", "admin")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", e.Code)

	resp, e = send(t, app, http.MethodPost, "/api/categories", `{"name":""}`, "admin")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, []string{"name"}, e.Fields)

	resp, e = send(t, app, http.MethodPost, "/api/categories", `{"name":`, "admin")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", e.Code)

	resp, e = send(t, app, http.MethodGet, "/api/categories?limit=500", "", "admin")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"limit"}, e.Fields)

	_, _ = send(t, app, http.MethodPost, "/api/categories", `{"name":"Boissons"}`, "admin")
	resp, e = send(t, app, http.MethodPost, "/api/categories", `{"name":"Boissons"}`, "admin")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", e.Code)
}

func TestErrorHandler_Estados(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", domain.NewValidationError("fecha inválida", "startDate"), 400, "VALIDATION"},
		{"no autorizado", domain.ErrUnauthorized, 401, "UNAUTHORIZED"},
		{"prohibido", fmt.Errorf("cancel: %w", domain.ErrForbidden), 403, "FORBIDDEN"},
		{"usuario", domain.ErrUserNotFound, 404, "NOT_FOUND"},
		{"email", domain.ErrEmailAlreadyExists, 409, "EMAIL_EXISTS"},
		{"stock", fmt.Errorf("Eau 1L: %w", domain.ErrInsufficientStock), 409, "INSUFFICIENT_STOCK"},
		{"conflicto", domain.ErrConflict, 409, "CONFLICT"},
		{"fiber", fiber.ErrMethodNotAllowed, 405, "HTTP_ERROR"},
		{"interno", errors.New("pg: connection refused"), 500, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop(), true)})
			app.Get("/x", func(*fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			if tc.status == 500 {
				assert.NotContains(t, body.Message, "connection refused", "producción no expone el detalle")
			}
		})
	}
}

func TestTenantRateLimiter(t *testing.T) {
	rl := apphttp.NewTenantRateLimiter(apphttp.RateLimitConfig{RequestsPerSecond: 1, Burst: 2, EntryTTL: time.Minute})

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"), "la ráfaga de a se agotó")
	assert.True(t, rl.Allow("b"), "cada empresa tiene su propio cupo")

	off := apphttp.NewTenantRateLimiter(apphttp.RateLimitConfig{})
	for i := 0; i < 100; i++ {
		require.True(t, off.Allow("a"))
	}
}

func TestTenantRateLimiter_Middleware429(t *testing.T) {
	rl := apphttp.NewTenantRateLimiter(apphttp.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})
	app := fiber.New()
	app.Get("/x", apphttp.AuthMiddleware(testJWTSecret), rl.Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "seller", 60))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
