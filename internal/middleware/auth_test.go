package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/rosenook/internal/config"
	"github.com/example/rosenook/internal/middleware"
	"github.com/example/rosenook/internal/models"
	"github.com/example/rosenook/internal/utils"
)

const testSecret = "test-secret"

func newTestApp() *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	protected := app.Group("/api", middleware.AuthMiddleware(cfg))
	protected.Patch("/orders/:orderNumber", middleware.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	protected.Get("/delivery/dashboard", middleware.RequireDelivery(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	return app
}

func bearerToken(t *testing.T, role string) string {
	t.Helper()
	token, err := utils.GenerateToken(testSecret, uuid.New(), role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp()

	t.Run("missing header yields 401", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/api/orders/RN1700000000123001", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header yields 401", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/api/orders/RN1700000000123001", nil)
		req.Header.Set("Authorization", "Token abc")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token yields 401", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/api/orders/RN1700000000123001", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApp()

	t.Run("customer is rejected with admin message", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/api/orders/RN1700000000123001", nil)
		req.Header.Set("Authorization", bearerToken(t, models.RoleCustomer))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Admin access required", body["error"])
	})

	t.Run("delivery role is rejected too", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/api/orders/RN1700000000123001", nil)
		req.Header.Set("Authorization", bearerToken(t, models.RoleDelivery))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/api/orders/RN1700000000123001", nil)
		req.Header.Set("Authorization", bearerToken(t, models.RoleAdmin))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRequireDelivery(t *testing.T) {
	app := newTestApp()

	t.Run("customer is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/delivery/dashboard", nil)
		req.Header.Set("Authorization", bearerToken(t, models.RoleCustomer))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Delivery access required", body["error"])
	})

	t.Run("delivery role passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/delivery/dashboard", nil)
		req.Header.Set("Authorization", bearerToken(t, models.RoleDelivery))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
