package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipehub/internal/config"
	"recipehub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMiddleware_SecurityHeaders(t *testing.T) {
	srv := &Server{config: &config.Config{}}
	app := fiber.New()
	srv.SetupMiddleware(app)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"), "requestid middleware should tag every response")
}

func TestSetupMiddleware_TracingEchoesTraceID(t *testing.T) {
	srv := &Server{config: &config.Config{TracingEnabled: true}}
	app := fiber.New()
	srv.SetupMiddleware(app)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

// Register and login throttle with the FailClosed policy: when the
// limiter store is unreachable they reject instead of running unthrottled.
func TestAuthRoutesFailClosedWithoutLimiterStore(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	srv := &Server{
		config:        &config.Config{JWTSecret: "test_secret"},
		uploadService: service.NewUploadService(t.TempDir(), 10),
	}
	app := fiber.New()
	srv.SetupRoutes(app)

	for _, path := range []string{"/api/register", "/api/login"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}

func TestLivenessCheck(t *testing.T) {
	srv := &Server{config: &config.Config{}}
	app := fiber.New()
	app.Get("/health/live", srv.LivenessCheck)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "up", body["status"])
}
