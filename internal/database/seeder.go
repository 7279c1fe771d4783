package database

import (
	"log"
	"time"

	"gorm.io/gorm"

	"attendfy-backend/config"
	"attendfy-backend/internal/auth"
	"attendfy-backend/internal/model"
)

// SeedAll creates the first super admin account so a fresh install can be
// logged into. Safe to run repeatedly.
func SeedAll(db *gorm.DB) {
	password := config.GetEnv("SEED_SUPERADMIN_PASSWORD", "superadmin123")
	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("seeder: hash password: %v", err)
		return
	}

	superAdmin := model.User{
		FirstName:  "Super",
		LastName:   "Admin",
		Email:      "superadmin@attendfy.local",
		Password:   hashed,
		Role:       model.RoleSuperAdmin,
		Department: "Management",
		EmployeeID: "SA001",
		JoinDate:   time.Now(),
		IsActive:   true,
	}

	result := db.FirstOrCreate(&superAdmin, model.User{Email: superAdmin.Email})
	if result.Error != nil {
		log.Printf("seeder: super admin: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Println("seeder: super admin account created (superadmin@attendfy.local)")
	}
}
