package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirasaad/wallet/pkg/domain/auth"
	"github.com/amirasaad/wallet/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticValidator map[string]string

func (s staticValidator) Validate(_ context.Context, token string) (string, error) {
	if username, ok := s[token]; ok {
		return username, nil
	}
	return "", auth.ErrUnauthenticated
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(Protected(staticValidator{"good": "alice"}))
	app.Get("/", func(c *fiber.Ctx) error {
		username, _ := CurrentUser(c)
		return c.SendString(username + ":" + CurrentToken(c))
	})
	return app
}

func TestProtected_Unauthorized(t *testing.T) {
	t.Parallel()
	app := newApp()
	for _, header := range []string{"", "Bearer", "Basic good", "Bearer bad"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)
		assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	}
}

func TestProtected_Authorized(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good")
	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "alice:good", string(body[:n]))
}

func TestMetrics_RecordsRoute(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	app := fiber.New()
	app.Use(Metrics(m))
	app.Get("/wallet/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/wallet/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/wallet/:id", "418")), 0)
}
