package repository

import (
	"time"

	"hospital-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindByStatus(db *gorm.DB, status entity.AppointmentStatus) ([]entity.Appointment, error)
	CheckIn(db *gorm.DB, id uuid.UUID, at time.Time) (int64, error)
	Complete(db *gorm.DB, id uuid.UUID, at time.Time) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
