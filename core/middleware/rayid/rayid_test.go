package rayid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayID(t *testing.T) {
	t.Run("GeneratesWhenMissing", func(t *testing.T) {
		app := fiber.New()
		app.Use(New())
		app.Get("/", func(c *fiber.Ctx) error {
			rid, _ := c.Locals("ray_id").(string)
			assert.NotEmpty(t, rid)
			return c.SendStatus(fiber.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Header.Get(HeaderName))
	})

	t.Run("HonorsIncomingHeader", func(t *testing.T) {
		app := fiber.New()
		app.Use(New())
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderName, "upstream-id")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "upstream-id", resp.Header.Get(HeaderName))
	})
}
