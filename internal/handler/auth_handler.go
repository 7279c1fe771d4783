package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"attendfy-backend/internal/auth"
	"attendfy-backend/internal/mailer"
	"attendfy-backend/internal/middleware"
	"attendfy-backend/internal/model"
	"attendfy-backend/internal/repository"
	"attendfy-backend/internal/validation"
)

type AuthHandler struct {
	users  repository.UserRepository
	mail   *mailer.Mailer
	secret string
}

func NewAuthHandler(users repository.UserRepository, mail *mailer.Mailer, secret string) *AuthHandler {
	return &AuthHandler{users: users, mail: mail, secret: secret}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := validation.Check(req); errs != nil {
		return validation.Respond(c, errs)
	}

	// No-such-user, deactivated account and wrong password all answer with
	// the same message so the endpoint cannot be used to enumerate accounts.
	user, err := h.users.FindByEmail(req.Email)
	if err != nil || !user.IsActive || !auth.CheckPassword(user.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	token, err := auth.CreateAccessToken(user, h.secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create token"})
	}

	c.Set("Cache-Control", "no-store")
	c.Set("Pragma", "no-cache")
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

type RegisterRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Department    string `json:"department" validate:"required"`
	EmployeeID    string `json:"employeeId"`
	AssignedAdmin *uint  `json:"assignedAdmin"`
}

// RegisterAdmin creates an admin account. Gated to super_admin at the route.
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := validation.Check(req); errs != nil {
		return validation.Respond(c, errs)
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Password must be at least 8 characters long"})
	}

	// Admin accounts may omit the employee id, a generated one is used.
	if req.EmployeeID == "" {
		req.EmployeeID = fmt.Sprintf("ADM%d", time.Now().UnixMilli()%1000000)
	}

	return h.register(c, req, model.RoleAdmin, nil, false)
}

// RegisterEmployee creates an employee account on behalf of the calling
// admin, who becomes the assigned administrator unless the body names one.
func (h *AuthHandler) RegisterEmployee(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := validation.Check(req); errs != nil {
		return validation.Respond(c, errs)
	}
	if req.EmployeeID == "" {
		return validation.Respond(c, []validation.FieldError{{Field: "EmployeeID", Message: "is required"}})
	}

	assignedAdmin := req.AssignedAdmin
	if assignedAdmin == nil {
		caller := middleware.CurrentUser(c)
		assignedAdmin = &caller.ID
	}

	return h.register(c, req, model.RoleEmployee, assignedAdmin, true)
}

// RegisterPublic is the open self-registration path. Accounts land as
// employees without an assigned administrator.
func (h *AuthHandler) RegisterPublic(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := validation.Check(req); errs != nil {
		return validation.Respond(c, errs)
	}
	if req.EmployeeID == "" {
		return validation.Respond(c, []validation.FieldError{{Field: "EmployeeID", Message: "is required"}})
	}

	return h.register(c, req, model.RoleEmployee, nil, true)
}

func (h *AuthHandler) register(c *fiber.Ctx, req RegisterRequest, role model.Role, assignedAdmin *uint, sendMail bool) error {
	// Duplicate check with a message naming the clashing field
	if existing, err := h.users.FindByEmailOrEmployeeID(req.Email, req.EmployeeID); err == nil {
		msg := "Employee ID already exists"
		if existing.Email == req.Email {
			msg = "Email already registered"
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	user := &model.User{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        hashed,
		Role:            role,
		Department:      req.Department,
		EmployeeID:      req.EmployeeID,
		AssignedAdminID: assignedAdmin,
		JoinDate:        time.Now(),
		IsActive:        true,
	}

	if err := h.users.Create(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
	}

	token, err := auth.CreateAccessToken(user, h.secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create token"})
	}

	if sendMail {
		h.mail.SendWelcome(user)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}
