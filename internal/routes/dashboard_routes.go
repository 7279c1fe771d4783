package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendfy-backend/config"
	"attendfy-backend/internal/handler"
	"attendfy-backend/internal/middleware"
	"attendfy-backend/internal/repository"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB, cfg config.Config) {
	users := repository.NewUserRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	hdl := handler.NewDashboardHandler(users, attendance)

	api := app.Group("/api/dashboard", middleware.Protect(users, cfg.JWTSecret))

	api.Get("/stats", hdl.Stats)
	api.Get("/weekly-attendance", hdl.WeeklyAttendance)
	api.Get("/recent-activity", hdl.RecentActivity)
}
