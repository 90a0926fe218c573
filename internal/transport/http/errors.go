package http

import (
	"errors"
	"log/slog"
	"net/http"

	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/storage"
	"lavender_breeze/internal/transport/http/views"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders the not-found and server-error pages. Other codes
// fall through to echo's default handler.
func HTTPErrorHandler(log *slog.Logger, e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, storage.ErrNotFound) {
			err = echo.ErrNotFound
		}

		he, ok := err.(*echo.HTTPError)
		if ok && he.Code == http.StatusNotFound {
			_ = RenderStatus(c, http.StatusNotFound, views.NotFound())
			return
		}

		code := http.StatusInternalServerError
		if ok {
			code = he.Code
		}
		if code >= http.StatusInternalServerError {
			log.Error("server error",
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().RequestURI),
				sl.Err(err),
			)
			_ = RenderStatus(c, code, views.ServerError())
			return
		}

		e.DefaultHTTPErrorHandler(err, c)
	}
}
