package database

import (
	"fmt"

	"hospital-appointment-service/internal/domain/entity"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables for every entity
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.Doctor{},
		&entity.Slot{},
		&entity.Appointment{},
		&entity.Prescription{},
		&entity.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
