package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendfy-backend/config"
	"attendfy-backend/internal/handler"
	"attendfy-backend/internal/middleware"
	"attendfy-backend/internal/repository"
)

func SetupDeviceRoutes(app *fiber.App, db *gorm.DB, cfg config.Config) {
	users := repository.NewUserRepository(db)
	devices := repository.NewDeviceRepository(db)
	hdl := handler.NewDeviceHandler(devices)

	api := app.Group("/api/devices", middleware.Protect(users, cfg.JWTSecret))

	api.Get("/", hdl.List)
	api.Post("/", middleware.RequireAdmin(), hdl.Create)
	api.Patch("/:id", middleware.RequireAdmin(), hdl.UpdateStatus)
}
