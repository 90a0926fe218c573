package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/metrics"
	sessionmw "lavender_breeze/internal/middleware"
	"lavender_breeze/internal/services/auth"
	"lavender_breeze/internal/transport/http/dto"
	"lavender_breeze/internal/transport/http/dto/response"
	"lavender_breeze/internal/transport/http/views"

	"github.com/labstack/echo/v4"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (r *Routers) LoginPage(c echo.Context) error {
	if _, ok := sessionmw.SessionAdminID(c); ok {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	return Render(c, views.Login(views.LoginData{Meta: meta(c, "Sign in")}))
}

// Login checks the per-IP limiter before the password, so a blocked address
// never reaches bcrypt.
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"
	ctx := c.Request().Context()
	ip := c.RealIP()

	log := r.log.With(
		slog.String("op", op),
		slog.String("ip", ip),
	)

	var form dto.LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}

	data := views.LoginData{Meta: meta(c, "Sign in"), Email: form.Email}

	if !r.Limiter.Check(ctx, ip) {
		log.Warn("login blocked")
		metrics.LoginFailuresTotal.Inc()
		data.Blocked = true
		return RenderStatus(c, http.StatusTooManyRequests, views.Login(data))
	}

	if err := c.Validate(form); err != nil {
		r.Limiter.Record(ctx, ip)
		metrics.LoginFailuresTotal.Inc()
		data.Error = "Enter your email and password."
		return RenderStatus(c, http.StatusBadRequest, views.Login(data))
	}

	admin, err := r.Auth.SignIn(ctx, form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Error("failed to sign in", sl.Err(err))
			return err
		}

		r.Limiter.Record(ctx, ip)
		metrics.LoginFailuresTotal.Inc()
		data.Error = "Invalid email or password."
		return RenderStatus(c, http.StatusUnauthorized, views.Login(data))
	}

	r.Limiter.Reset(ctx, ip)

	if err := sessionmw.SetAdminSession(c, admin.ID); err != nil {
		log.Error("failed to save session", sl.Err(err))
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (r *Routers) Logout(c echo.Context) error {
	if err := sessionmw.ClearAdminSession(c); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, sessionmw.LoginPath)
}

func (r *Routers) Dashboard(c echo.Context) error {
	page, err := r.MainPage.GetMainPage(c.Request().Context())
	if err != nil {
		return err
	}

	data := r.dashboard(c, str(page.MainImageURL), str(page.OpeningText))
	if c.QueryParam("saved") != "" {
		data.Notice = "Saved."
	}

	return Render(c, views.Dashboard(data))
}

// SaveMain updates the main page singleton. A failed upload keeps the
// previous image and shows the reason above the form.
func (r *Routers) SaveMain(c echo.Context) error {
	ctx := c.Request().Context()

	current, err := r.MainPage.GetMainPage(ctx)
	if err != nil {
		return err
	}

	var form dto.MainPageForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Image = optionalFile(c, "image")

	err = c.Validate(form)
	if err == nil {
		_, err = r.MainPage.SaveMainPage(ctx, current, form)
	}
	if err != nil {
		msg, ok := formMessage(err)
		if !ok {
			return err
		}

		data := r.dashboard(c, str(current.MainImageURL), form.OpeningText)
		data.Error = msg
		return RenderStatus(c, http.StatusUnprocessableEntity, views.Dashboard(data))
	}

	return c.Redirect(http.StatusSeeOther, "/admin?saved=1")
}

func (r *Routers) dashboard(c echo.Context, image, text string) views.DashboardData {
	return views.DashboardData{
		Meta:        meta(c, "Admin"),
		MainImage:   image,
		OpeningText: text,
		Links: []views.Link{
			{Label: "Exhibitions", Href: adminExhibitions},
			{Label: "Export catalogue", Href: adminExhibitions + "/export.xlsx"},
			{Label: "Runtime stats", Href: "/admin/debug/statsviz/"},
		},
	}
}

// ExportCatalogue sends the whole catalogue as one workbook. The file is
// built in memory so a failure still produces a proper error page.
func (r *Routers) ExportCatalogue(c echo.Context) error {
	const op = "http.routers.ExportCatalogue"

	var buf bytes.Buffer
	if err := r.Export.WriteXLSX(c.Request().Context(), &buf); err != nil {
		r.log.Error("failed to export catalogue", slog.String("op", op), sl.Err(err))
		return err
	}

	name := fmt.Sprintf("catalogue-%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))

	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (r *Routers) Health(c echo.Context) error {
	ctx := c.Request().Context()

	status := make(map[string]string, len(r.Checks))
	var down []string
	for name, check := range r.Checks {
		if err := check.HealthCheck(ctx); err != nil {
			r.log.Warn("health check failed", slog.String("component", name), sl.Err(err))
			down = append(down, name)
			continue
		}
		status[name] = "ok"
	}

	if len(down) > 0 {
		return c.JSON(http.StatusServiceUnavailable, response.Unavailable(down))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(status))
}
