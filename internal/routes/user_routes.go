package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendfy-backend/config"
	"attendfy-backend/internal/handler"
	"attendfy-backend/internal/middleware"
	"attendfy-backend/internal/repository"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB, cfg config.Config) {
	users := repository.NewUserRepository(db)
	hdl := handler.NewUserHandler(users)

	api := app.Group("/api/users", middleware.Protect(users, cfg.JWTSecret))

	api.Get("/", middleware.RequireAdmin(), hdl.List)
	api.Get("/stats/overview", middleware.RequireAdmin(), hdl.StatsOverview)
	api.Get("/:userId", middleware.SelfOrAdmin("userId"), hdl.Get)
	api.Put("/:userId", middleware.SelfOrAdmin("userId"), hdl.Update)
	api.Delete("/:userId", middleware.RequireAdmin(), hdl.Delete)
	api.Put("/:userId/deactivate", middleware.SelfOrAdmin("userId"), hdl.Deactivate)
	api.Put("/:userId/change-password", middleware.SelfOrAdmin("userId"), hdl.ChangePassword)
}
