package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"attendfy-backend/internal/auth"
	"attendfy-backend/internal/middleware"
	"attendfy-backend/internal/model"
	"attendfy-backend/internal/repository"
	"attendfy-backend/internal/validation"
)

type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// List returns the admin-scoped user listing. A non-super-admin only sees
// the users assigned to them; a super_admin sees everyone and may filter
// by assigned admin.
func (h *UserHandler) List(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	filter := repository.UserFilter{
		Department: c.Query("department"),
		Role:       c.Query("role"),
	}
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	if caller.Role != model.RoleSuperAdmin {
		filter.AssignedAdminID = &caller.ID
	} else if v := c.Query("assignedAdmin"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			adminID := uint(id)
			filter.AssignedAdminID = &adminID
		}
	}

	users, err := h.users.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	user, err := h.users.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	return c.JSON(user)
}

type UpdateUserRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Department *string `json:"department"`
	Role       *string `json:"role" validate:"omitempty,oneof=super_admin admin hr_manager supervisor employee"`
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := validation.Check(req); errs != nil {
		return validation.Respond(c, errs)
	}

	user, err := h.users.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	// Role changes are gated separately: admin-or-above, and never to a
	// rank above the caller's own.
	if req.Role != nil {
		if !caller.Role.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not authorized to change role"})
		}
		newRole := model.Role(*req.Role)
		if !caller.Role.AtLeast(newRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not authorized to assign this role"})
		}
		user.Role = newRole
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Department != nil {
		user.Department = *req.Department
	}

	if err := h.users.Update(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email already exists"})
	}
	return c.JSON(user)
}

// Delete hard-removes a user. Super admin accounts can never be deleted,
// and a non-super-admin admin may only delete users assigned to them.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	user, err := h.users.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	if user.Role == model.RoleSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Cannot delete super admin"})
	}
	if caller.Role != model.RoleSuperAdmin &&
		(user.AssignedAdminID == nil || *user.AssignedAdminID != caller.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not authorized to delete this user"})
	}

	if err := h.users.Delete(user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// Deactivate is the soft delete: the account stays but can no longer log in.
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	user, err := h.users.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	user.IsActive = false
	if err := h.users.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(fiber.Map{"message": "User deactivated successfully"})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := validation.Check(req); errs != nil {
		return validation.Respond(c, errs)
	}

	user, err := h.users.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	// The current password is re-verified even for admins
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Current password is incorrect"})
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	user.Password = hashed
	if err := h.users.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

func (h *UserHandler) StatsOverview(c *fiber.Ctx) error {
	stats, err := h.users.StatsOverview()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(stats)
}
