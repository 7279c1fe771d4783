package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"attendfy-backend/internal/auth"
	"attendfy-backend/internal/model"
	"attendfy-backend/internal/repository"
)

// Locals keys set by Protect.
const (
	LocalUser   = "user"
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// Protect is the mandatory gate in front of every non-public endpoint:
// it resolves the bearer token to an active user and stores the full
// record in the request locals.
func Protect(users repository.UserRepository, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Take the token from the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No authentication token, access denied"})
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// 2. Parse and validate
		claims, err := auth.ParseValidate(tokenString, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token is invalid"})
		}

		// 3. The identity must still resolve to a live account
		user, err := users.FindByID(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "User not found"})
		}
		if !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "User account is deactivated"})
		}

		// 4. Hand the resolved user to the handlers
		c.Locals(LocalUser, user)
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)

		return c.Next()
	}
}

// CurrentUser returns the user resolved by Protect.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(LocalUser).(*model.User)
	return user
}
