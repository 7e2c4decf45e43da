package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"savoria/initializers"
	"savoria/models"
	"savoria/utils"
)

// DeserializeUser resolves the bearer token into the principal stored in
// c.Locals("user"). Revoked tokens (logout) are rejected via the redis
// denylist.
func DeserializeUser(c *fiber.Ctx) error {
	var tokenString string
	authorization := c.Get("Authorization")

	if strings.HasPrefix(authorization, "Bearer ") {
		tokenString = strings.TrimPrefix(authorization, "Bearer ")
	} else if cookie := c.Cookies("access_token"); cookie != "" {
		tokenString = cookie
	}

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "You are not logged in",
		})
	}

	claims, err := utils.ValidateToken(tokenString, initializers.AppConfig.JwtSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	if initializers.RedisClient != nil {
		revoked, err := initializers.RedisClient.Exists(context.Background(), "denylist:"+claims.TokenID).Result()
		if err == nil && revoked > 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "fail",
				"message": "Token has been revoked",
			})
		}
	}

	var user models.User
	if err := initializers.DB.First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "fail",
			"message": "The user belonging to this token no longer exists",
		})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "Account is blocked",
		})
	}

	c.Locals("user", models.FilterUserRecord(&user))
	c.Locals("token_claims", claims)

	return c.Next()
}

// RequireRole guards a route group behind an explicit role check. Runs after
// DeserializeUser.
func RequireRole(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.UserResponse)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "fail",
				"message": "You are not logged in",
			})
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You do not have permission to perform this action",
		})
	}
}
