package app_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"lavender_breeze/internal/app"
	"lavender_breeze/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	adminEmail    = "curator@example.com"
	adminPassword = "lavender-pass"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())
}

type client struct {
	t    *testing.T
	base *url.URL
	http *http.Client
}

func newClient(t *testing.T, srv *httptest.Server) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	return &client{
		t:    t,
		base: base,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *client) get(path string) (*http.Response, string) {
	resp, err := c.http.Get(c.base.String() + path)
	require.NoError(c.t, err)

	return resp, readBody(c.t, resp)
}

// post sends a form with the CSRF token the server put into the cookie jar.
func (c *client) post(path string, form url.Values) (*http.Response, string) {
	form.Set("_csrf", c.csrf())

	resp, err := c.http.PostForm(c.base.String()+path, form)
	require.NoError(c.t, err)

	return resp, readBody(c.t, resp)
}

func (c *client) csrf() string {
	for _, cookie := range c.http.Jar.Cookies(c.base) {
		if cookie.Name == "_csrf" {
			return cookie.Value
		}
	}

	c.t.Fatal("no csrf cookie")
	return ""
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(b)
}

func TestApp_CuratorFlow(t *testing.T) {
	cfg := &config.Config{
		Env: "local",
		DSN: startPostgres(t),
		HTTP: config.HTTPConfig{
			Port:         "0",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Session: config.SessionConfig{Secret: "app-test-secret", MaxAge: 3600},
		FileStorage: config.FileStorageConfig{
			Driver:  config.DriverLocal,
			BaseDir: t.TempDir(),
			BaseURL: "/uploads",
			MaxSize: 1 << 20,
		},
		LoginLimit: config.LoginLimitConfig{Attempts: 5, Window: time.Minute},
		Admin:      config.AdminConfig{Email: adminEmail, Password: adminPassword},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	application := app.New(log, cfg)

	srv := httptest.NewServer(application.HTTPServer.Handler())
	t.Cleanup(srv.Close)

	c := newClient(t, srv)

	resp, _ := c.get("/admin")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))

	resp, body := c.get("/admin/login")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="_csrf"`)

	resp, body = c.post("/admin/login", url.Values{"email": {adminEmail}, "password": {"wrong"}})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid email or password.")

	resp, _ = c.post("/admin/login", url.Values{"email": {adminEmail}, "password": {adminPassword}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	resp, _ = c.post("/admin/exhibitions/new", url.Values{"title": {"Spring Salon"}, "slug": {"spring"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/exhibitions/spring", resp.Header.Get("Location"))

	resp, _ = c.post("/admin/exhibitions/spring/rooms/new", url.Values{"title": {"North Hall"}, "slug": {"north"}, "type": {"text"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/exhibitions/spring/rooms/north", resp.Header.Get("Location"))

	resp, _ = c.post("/admin/exhibitions/spring/rooms/north/posts/new", url.Values{"title": {"Opening night"}, "content": {"First line\n\nSecond line"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	postPath := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(postPath, "/admin/exhibitions/spring/rooms/north/posts/"))

	resp, _ = c.get("/exhibitions/spring")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/rooms/north", resp.Header.Get("Location"))

	resp, body = c.get("/rooms/north")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "North Hall")
	assert.Contains(t, body, "Opening night")

	resp, body = c.get("/main")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Thank you for visiting the gallery.")

	resp, _ = c.get("/exhibitions/does-not-exist")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = c.post("/admin/exhibitions/spring/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = c.get("/rooms/north")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = c.get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"postgres":"ok"`)

	resp, _ = c.post("/admin/logout", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = c.get("/admin/exhibitions")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	application.Stop()
}
