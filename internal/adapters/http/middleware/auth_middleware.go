package middleware

import (
	"strings"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"
	"github.com/Hllyys/FullStackCase/internal/core/services"
	"github.com/Hllyys/FullStackCase/internal/pkg/jwt"
	"github.com/Hllyys/FullStackCase/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the Authorization bearer token and stores the
// caller's identity in request locals.
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := authService.ValidateAccessToken(accessToken)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("roleID", claims.RoleID)

		return c.Next()
	}
}

// RoleMiddleware restricts a route to the given role ids
func RoleMiddleware(allowedRoles ...uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleID, ok := c.Locals("roleID").(uint)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if roleID == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows only the Admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}
