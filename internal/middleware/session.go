package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/logger/sl"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	SessionName = "admin_session"
	LoginPath   = "/admin/login"

	adminIDKey = "admin_id"
	adminCtx   = "admin"
)

// AdminProvider проверяет, что администратор из сессии еще существует
type AdminProvider interface {
	Admin(ctx context.Context, id uuid.UUID) (models.AdminUser, error)
}

func NewSessionStore(secret string, maxAge int, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
	return store
}

// SessionGuard пропускает в админку только с живой сессией. Иначе 303 на
// страницу входа. Сама страница входа доступна всем.
func SessionGuard(log *slog.Logger, admins AdminProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.TrimSuffix(c.Request().URL.Path, "/") == LoginPath {
				return next(c)
			}

			id, ok := SessionAdminID(c)
			if !ok {
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}

			admin, err := admins.Admin(c.Request().Context(), id)
			if err != nil {
				log.Warn("session admin rejected",
					slog.String("op", "middleware.SessionGuard"),
					slog.String("admin_id", id.String()),
					sl.Err(err),
				)
				_ = ClearAdminSession(c)
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}

			c.Set(adminCtx, admin)

			return next(c)
		}
	}
}

// SessionAdminID id администратора из cookie, если сессия есть
func SessionAdminID(c echo.Context) (uuid.UUID, bool) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return uuid.Nil, false
	}

	raw, ok := sess.Values[adminIDKey].(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// CurrentAdmin администратор, которого положил SessionGuard
func CurrentAdmin(c echo.Context) (models.AdminUser, bool) {
	admin, ok := c.Get(adminCtx).(models.AdminUser)
	return admin, ok
}

func SetAdminSession(c echo.Context, id uuid.UUID) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Values[adminIDKey] = id.String()
	return sess.Save(c.Request(), c.Response())
}

func ClearAdminSession(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	delete(sess.Values, adminIDKey)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// CacheControl админка никогда не кэшируется, загруженные файлы кэшируются
// надолго (ключи уникальны), остальное коротко.
func CacheControl(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/uploads/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case strings.HasPrefix(path, "/admin"), path == "/metrics":
			c.Response().Header().Set("Cache-Control", "no-store")
		default:
			c.Response().Header().Set("Cache-Control", "no-cache")
		}
		return next(c)
	}
}
