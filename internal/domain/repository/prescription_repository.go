package repository

import (
	"hospital-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	Update(db *gorm.DB, prescription *entity.Prescription) error
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Prescription, error)
	FindByAppointmentIDs(db *gorm.DB, appointmentIDs []uuid.UUID) (map[uuid.UUID]entity.Prescription, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error)
	FindBilledByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error)
}
