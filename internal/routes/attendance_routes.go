package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendfy-backend/config"
	"attendfy-backend/internal/handler"
	"attendfy-backend/internal/middleware"
	"attendfy-backend/internal/model"
	"attendfy-backend/internal/repository"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB, cfg config.Config) {
	users := repository.NewUserRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	hdl := handler.NewAttendanceHandler(attendance)

	api := app.Group("/api/attendance", middleware.Protect(users, cfg.JWTSecret))

	api.Post("/check-in", hdl.CheckIn)
	api.Post("/check-out", hdl.CheckOut)
	api.Get("/summary", hdl.Summary)
	api.Get("/", hdl.List)
	api.Put("/:id", middleware.RequireRole(model.HROrHigher...), hdl.Update)
}
