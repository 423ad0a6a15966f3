package middleware

import (
	"strings"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/dto"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Paths that don't require realm identification.
var realmSkipPaths = []string{
	"/api/health",
	"/api/metrics",
}

// RealmMiddleware extracts realm_id from JWT claims, X-Realm-ID header, or query param.
func RealmMiddleware(registry *realm.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, skip := range realmSkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		// 1. Try JWT claim (already authenticated)
		if token, ok := c.Locals("user").(*jwt.Token); ok {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if realmID, ok := claims["realm_id"].(string); ok && realmID != "" {
					c.Locals("realm_id", realmID)
					return c.Next()
				}
			}
		}

		// 2. Try X-Realm-ID header
		realmID := c.Get("X-Realm-ID")
		if realmID != "" {
			if !registry.Exists(realmID) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Invalid X-Realm-ID: " + realmID,
				})
			}
			c.Locals("realm_id", realmID)
			return c.Next()
		}

		// 3. Try query param (backward compat)
		realmID = c.Query("realm_id")
		if realmID != "" {
			if !registry.Exists(realmID) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Invalid realm_id: " + realmID,
				})
			}
			c.Locals("realm_id", realmID)
			return c.Next()
		}

		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "X-Realm-ID header is required",
		})
	}
}
