package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ShamarKellman/power-tranz/internal/core/security"
)

// Protected guards a route with the service API key. An empty keyHash
// leaves the route open.
func Protected(keyHash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if keyHash == "" {
			return c.Next()
		}

		// 1. Get Token from Header
		authHeader := c.Get("Authorization") // "Bearer pt_live_..."
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Missing API Key"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Header Format"})
		}

		// 2. Compare hashes, never plain text
		if !security.ValidateKey(parts[1], keyHash) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid API Key"})
		}

		return c.Next()
	}
}
