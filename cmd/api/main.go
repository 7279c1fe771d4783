package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"attendfy-backend/config"
	"attendfy-backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	app := fiber.New()

	// Global middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowMethods:     "GET,HEAD,PUT,PATCH,POST,DELETE",
		AllowCredentials: cfg.CORSOrigin != "*",
	}))
	app.Use(logger.New())

	routes.SetupAuthRoutes(app, db, cfg)
	routes.SetupUserRoutes(app, db, cfg)
	routes.SetupAttendanceRoutes(app, db, cfg)
	routes.SetupDeviceRoutes(app, db, cfg)
	routes.SetupDashboardRoutes(app, db, cfg)

	log.Printf("Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
