package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"recipehub/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corsTestOrigin = "http://localhost:5173"

func newCORSTestApp(t *testing.T) *fiber.App {
	t.Helper()
	srv := &Server{config: &config.Config{AllowedOrigins: corsTestOrigin}}
	app := fiber.New()
	srv.SetupMiddleware(app)
	return app
}

func doOriginRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Origin", corsTestOrigin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// saturateLimiter issues enough requests to use up the global per-IP budget.
func saturateLimiter(t *testing.T, app *fiber.App, method, path string) {
	t.Helper()
	for i := 0; i < 100; i++ {
		resp := doOriginRequest(t, app, method, path)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, "request %d should not be limited yet", i+1)
		_ = resp.Body.Close()
	}
}

// Browsers only expose error responses to scripts when CORS headers are
// present, so the 429 from the limiter must still carry them.
func TestRateLimitedResponseKeepsCORSHeaders(t *testing.T) {
	app := newCORSTestApp(t)
	app.Get("/limited", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	saturateLimiter(t, app, http.MethodGet, "/limited")

	resp := doOriginRequest(t, app, http.MethodGet, "/limited")
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, corsTestOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestPreflightBypassesLimiter(t *testing.T) {
	app := newCORSTestApp(t)
	app.Post("/limited", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	saturateLimiter(t, app, http.MethodPost, "/limited")

	limited := doOriginRequest(t, app, http.MethodPost, "/limited")
	assert.Equal(t, fiber.StatusTooManyRequests, limited.StatusCode)
	_ = limited.Body.Close()

	preflight := httptest.NewRequest(http.MethodOptions, "/limited", nil)
	preflight.Header.Set("Origin", corsTestOrigin)
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
	resp, err := app.Test(preflight, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, corsTestOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}
