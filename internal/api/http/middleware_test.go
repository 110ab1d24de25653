package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/observability"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

func TestRequestTimeoutReachesHandlers(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), time.Second)

	app.Get("/deadline", func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/deadline", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestRequestTimeoutCancelsSlowWork(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 20*time.Millisecond)

	app.Get("/slow", func(c *fiber.Ctx) error {
		select {
		case <-c.UserContext().Done():
			return apperrors.NewInternalError(c.UserContext().Err())
		case <-time.After(2 * time.Second):
			return c.SendString("finished")
		}
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/slow", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
}

func TestRequestIDHeaderEchoedAndGenerated(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(observability.RequestIDHeader))

	req := httptest.NewRequest(nethttp.MethodGet, "/", nil)
	req.Header.Set(observability.RequestIDHeader, "req-123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(observability.RequestIDHeader))
}
