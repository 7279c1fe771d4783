package main

import (
	"log"

	"github.com/joho/godotenv"

	"attendfy-backend/config"
	"attendfy-backend/internal/database"
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

	database.SeedAll(db)
	log.Println("Seeding done")
}
