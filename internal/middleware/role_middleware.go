package middleware

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"attendfy-backend/internal/model"
)

// RequireRole allows the request only when the caller's role is in the
// declared allow-list. The 403 names the caller's role.
func RequireRole(allowedRoles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
		}

		for _, role := range allowedRoles {
			if role == user.Role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": fmt.Sprintf("User role %s is not authorized to access this route", user.Role),
		})
	}
}

// RequireAdmin allows admin and super_admin.
func RequireAdmin() fiber.Handler {
	return RequireRole(model.RoleSuperAdmin, model.RoleAdmin)
}

// RequireSuperAdmin allows only super_admin.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || user.Role != model.RoleSuperAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. Super Admin only."})
		}
		return c.Next()
	}
}

// SelfOrAdmin allows admins, or the resource owner when the path parameter
// equals the caller's own id.
func SelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
		}
		if user.Role.IsAdmin() {
			return c.Next()
		}

		targetID, err := strconv.Atoi(c.Params(param))
		if err == nil && uint(targetID) == user.ID {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. You can only access your own data."})
	}
}
