package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(key string) *fiber.App {
	app := fiber.New()
	app.Use(New(Config{ApiKey: key}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuth(t *testing.T) {
	t.Run("RejectsMissingKey", func(t *testing.T) {
		app := newApp("secret")

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("RejectsWrongKey", func(t *testing.T) {
		app := newApp("secret")

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderName, "guess")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("AcceptsValidKey", func(t *testing.T) {
		app := newApp("secret")

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderName, "secret")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("DisabledWhenUnset", func(t *testing.T) {
		app := newApp("")

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
