package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lavender_breeze/internal/config"
	"lavender_breeze/internal/lib/logger/sl"
	sessionmw "lavender_breeze/internal/middleware"
	httprouters "lavender_breeze/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const statsvizRoot = "/admin/debug/statsviz"

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	admins  sessionmw.AdminProvider
	cfg     config.HTTPConfig
	// uploadsDir раздается по /uploads, пусто при хранении в S3
	uploadsDir string
}

func New(
	log *slog.Logger,
	cfg config.HTTPConfig,
	sess config.SessionConfig,
	routers *httprouters.Routers,
	admins sessionmw.AdminProvider,
	uploadsDir string,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = httprouters.HTTPErrorHandler(log, e)

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.Use(middleware.Recover())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)

			return nil
		},
	}))

	e.Use(sessionmw.PrometheusMetrics)

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src * data:; connect-src 'self'",
	}))

	e.Use(session.Middleware(sessionmw.NewSessionStore(sess.Secret, sess.MaxAge, sess.CookieSecure)))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:     middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   sess.CookieSecure,
		CookieHTTPOnly: true,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/metrics" || path == "/healthz" || strings.HasPrefix(path, "/uploads/")
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(sessionmw.CacheControl)

	return &Server{
		log:        log,
		e:          e,
		routers:    routers,
		admins:     admins,
		cfg:        cfg,
		uploadsDir: uploadsDir,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info("starting http server", slog.String("op", op), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	srv := &http.Server{
		Addr:         s.addr(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	if err := s.e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
}

// Handler отдает собранный echo, нужен тестам
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if s.uploadsDir != "" {
		s.e.Static("/uploads", s.uploadsDir)
	}

	admin := s.routers.Register(s.e, sessionmw.SessionGuard(s.log, s.admins))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux, statsviz.Root(statsvizRoot)); err != nil {
		s.log.Warn("statsviz disabled", sl.Err(err))
		return
	}

	debug := admin.Group("/debug/statsviz")
	{
		debug.GET("/", echo.WrapHandler(mux))
		debug.GET("/*", echo.WrapHandler(mux))
	}
}
