package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowRefusesAfterBudget(t *testing.T) {
	limiter := New(Config{MaxRequestsPerMinute: 3})

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.allow("client"))
	}
	assert.False(t, limiter.allow("client"))

	// A different client has its own bucket.
	assert.True(t, limiter.allow("other"))
}

func TestMiddlewareReturns429(t *testing.T) {
	limiter := New(Config{MaxRequestsPerMinute: 1})

	app := fiber.New()
	app.Use(limiter.Middleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestDefaultBudget(t *testing.T) {
	limiter := New(Config{})

	assert.Equal(t, 60, limiter.maxTokens)
}
