package middleware

import (
	"github.com/deptsearch/deptsearch-api/database"
	"github.com/deptsearch/deptsearch-api/model"
	"github.com/deptsearch/deptsearch-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const adminKeyHeader = "X-Admin-Api-Key"

// RequireAdminKey verifies the admin API key header against the bcrypt hash
// stored in app_settings. Endpoints behind this middleware mutate catalog
// state, so a missing or unseeded hash closes them rather than opening them.
func RequireAdminKey(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(adminKeyHeader)
		if key == "" {
			return response.Unauthorized(c, "Admin API key required")
		}

		hash, err := store.GetSetting(model.SettingAdminKeyHash)
		if err != nil || hash == "" {
			return response.Forbidden(c, "Admin access is not configured")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			return response.Forbidden(c, "Invalid admin API key")
		}

		return c.Next()
	}
}
