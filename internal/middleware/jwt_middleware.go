package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"saalisloki/internal/models"
	"saalisloki/internal/repositories"
	"saalisloki/internal/services"
)

// AuthRequired guards mutating entry routes. It verifies the bearer
// token and derives the caller's privilege from the stored user record
// the claims point at, never from anything the client sent alongside
// the token. Only full privilege passes.
func AuthRequired(authService *services.AuthService, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":     "must be logged in",
				"privilege": models.PrivilegeUnauthenticated,
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":     "must be logged in",
				"privilege": models.PrivilegeUnauthenticated,
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, services.ErrExpiredToken) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "token expired",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		user, err := userRepo.GetByUsername(claims.Username)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid token",
				})
			}
			log.Printf("Failed to load user %s for authorization: %v", claims.Username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "could not authorize request",
			})
		}

		if user.Privilege != models.PrivilegeFull {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "insufficient permission",
			})
		}

		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		c.Locals("privilege", user.Privilege)

		return c.Next()
	}
}
