// internal/database/seed.go
package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/models"
)

// SeedInitialData creates the bootstrap superadmin account when none exists.
// Credentials come from SUPERADMIN_EMAIL / SUPERADMIN_PASSWORD so a fresh
// deployment is never left without an administrative login.
func SeedInitialData(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleSuperadmin).Count(&count)
	if count > 0 {
		return nil
	}

	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("No superadmin exists and SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD are unset; skipping seed")
		return nil
	}

	admin := &models.User{
		Curp:  "SUPERADMIN0000GOB0",
		Email: email,
		Role:  models.RoleSuperadmin,
	}
	if err := admin.SetPassword(password); err != nil {
		return fmt.Errorf("failed to set superadmin password: %w", err)
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create superadmin user: %w", err)
	}

	log.Println("Bootstrap superadmin user created")
	return nil
}
