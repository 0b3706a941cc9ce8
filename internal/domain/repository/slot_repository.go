package repository

import (
	"hospital-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	CreateBatch(db *gorm.DB, slots []entity.Slot) error
	FindByID(db *gorm.DB, id int64) (*entity.Slot, error)
	FindFreeByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Slot, error)
	FindByDoctorAndTime(db *gorm.DB, doctorID uuid.UUID, date, clock string) ([]entity.Slot, error)
	MarkBooked(db *gorm.DB, id int64) (int64, error)
	Release(db *gorm.DB, id int64) (int64, error)
}
