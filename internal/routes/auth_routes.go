package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendfy-backend/config"
	"attendfy-backend/internal/handler"
	"attendfy-backend/internal/mailer"
	"attendfy-backend/internal/middleware"
	"attendfy-backend/internal/repository"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, cfg config.Config) {
	users := repository.NewUserRepository(db)
	hdl := handler.NewAuthHandler(users, mailer.New(cfg), cfg.JWTSecret)

	protect := middleware.Protect(users, cfg.JWTSecret)

	api := app.Group("/api/auth")
	api.Post("/login", middleware.LoginRateLimiter(), hdl.Login)
	api.Post("/register-public", hdl.RegisterPublic)
	api.Post("/register-admin", protect, middleware.RequireSuperAdmin(), hdl.RegisterAdmin)
	api.Post("/register-employee", protect, middleware.RequireAdmin(), hdl.RegisterEmployee)
	api.Get("/me", protect, hdl.Me)
}
