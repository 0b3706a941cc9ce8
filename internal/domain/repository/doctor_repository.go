package repository

import (
	"hospital-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindApprovedBySpecialization(db *gorm.DB, specialization string) ([]entity.Doctor, error)
	FindByApproval(db *gorm.DB, approved bool, withSlots bool) ([]entity.Doctor, error)
	Approve(db *gorm.DB, id uuid.UUID) (int64, error)
}
