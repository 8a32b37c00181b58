package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/yukikurage/task-manager/internal/config"
	"github.com/yukikurage/task-manager/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the default task statuses, labels and the admin account.
// It is idempotent: rows already present are left untouched.
func Seed(db *gorm.DB, cfg *config.Config) error {
	for _, slug := range []string{"draft", "to_review", "to_be_fixed", "to_publish", "published"} {
		var status models.TaskStatus
		err := db.Where("slug = ?", slug).First(&status).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check status %q: %w", slug, err)
		}
		status = models.TaskStatus{Name: slug, Slug: slug}
		if err := db.Create(&status).Error; err != nil {
			return fmt.Errorf("failed to seed status %q: %w", slug, err)
		}
	}

	for _, name := range []string{"feature", "bug"} {
		var label models.Label
		err := db.Where("name = ?", name).First(&label).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check label %q: %w", name, err)
		}
		label = models.Label{Name: name}
		if err := db.Create(&label).Error; err != nil {
			return fmt.Errorf("failed to seed label %q: %w", name, err)
		}
	}

	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin account seed")
		return nil
	}

	var admin models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check admin account: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin = models.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
		FirstName:    "Admin",
		LastName:     "User",
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	return nil
}
