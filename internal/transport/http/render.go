package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"lavender_breeze/internal/lib/failure"
	sessionmw "lavender_breeze/internal/middleware"
	"lavender_breeze/internal/storage"
	"lavender_breeze/internal/transport/http/views"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

func meta(c echo.Context, title string) views.Meta {
	_, admin := sessionmw.SessionAdminID(c)

	m := views.Meta{
		Title: title,
		CSRF:  CsrfToken(c),
		Admin: admin,
	}
	if path := c.Request().URL.Path; strings.HasPrefix(path, "/admin") {
		m.Crumbs = Breadcrumb(path)
	}

	return m
}

// formMessage turns a service error into the line shown above a form. ok is
// false for errors that are not the user's to fix.
func formMessage(err error) (string, bool) {
	if fe, ok := failure.As(err); ok {
		return fe.Message(), true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return "Save failed: " + strings.Join(parts, ", "), true
	}

	if errors.Is(err, storage.ErrSlugTaken) || errors.Is(err, storage.ErrInvalidSlug) {
		return "Save failed: " + failure.Cause(err), true
	}

	return "", false
}

// optionalFile returns nil when the form carries no file under name.
func optionalFile(c echo.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil || fh.Filename == "" {
		return nil
	}

	return fh
}

// notFound converts storage misses into the 404 page.
func notFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return echo.ErrNotFound
	}

	return err
}
