package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"lavender_breeze/internal/domain/models"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAdminProvider struct {
	mock.Mock
}

func (m *MockAdminProvider) Admin(ctx context.Context, id uuid.UUID) (models.AdminUser, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.AdminUser), args.Error(1)
}

func newGuardedEcho(admins AdminProvider) *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(NewSessionStore("test-secret-test-secret-32bytes!", 3600, false)))

	admin := e.Group("/admin", SessionGuard(slog.Default(), admins))
	admin.GET("", func(c echo.Context) error {
		a, _ := CurrentAdmin(c)
		return c.String(http.StatusOK, "hello "+a.Email)
	})
	admin.GET("/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "login form")
	})

	e.GET("/signin/:id", func(c echo.Context) error {
		id := uuid.MustParse(c.Param("id"))
		if err := SetAdminSession(c, id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})

	return e
}

func signIn(t *testing.T, e *echo.Echo, id uuid.UUID) []*http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signin/"+id.String(), nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	return rec.Result().Cookies()
}

func TestSessionGuard(t *testing.T) {
	id := uuid.New()

	t.Run("anonymous request is sent to login", func(t *testing.T) {
		e := newGuardedEcho(new(MockAdminProvider))

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("login page is open", func(t *testing.T) {
		e := newGuardedEcho(new(MockAdminProvider))

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "login form", rec.Body.String())
	})

	t.Run("valid session passes", func(t *testing.T) {
		admins := new(MockAdminProvider)
		admins.On("Admin", mock.Anything, id).Return(models.AdminUser{ID: id, Email: "a@b.c"}, nil).Once()
		e := newGuardedEcho(admins)
		cookies := signIn(t, e, id)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello a@b.c", rec.Body.String())
		admins.AssertExpectations(t)
	})

	t.Run("deleted admin loses the session", func(t *testing.T) {
		admins := new(MockAdminProvider)
		admins.On("Admin", mock.Anything, id).Return(models.AdminUser{}, errors.New("admin not found")).Once()
		e := newGuardedEcho(admins)
		cookies := signIn(t, e, id)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
	})
}

func TestCacheControl(t *testing.T) {
	e := echo.New()
	e.Use(CacheControl)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/*", ok)

	tests := map[string]string{
		"/admin/exhibitions":     "no-store",
		"/uploads/rooms/1-a.png": "public, max-age=31536000, immutable",
		"/rooms/hall":            "no-cache",
		"/metrics":               "no-store",
	}

	for path, want := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Header().Get("Cache-Control"), path)
	}
}
