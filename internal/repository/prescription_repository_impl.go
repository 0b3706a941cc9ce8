package repository

import (
	"errors"

	"hospital-appointment-service/internal/domain/entity"
	domainRepo "hospital-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Doctor").Create(prescription).Error
}

func (r *prescriptionRepository) Update(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Doctor").Save(prescription).Error
}

func (r *prescriptionRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Where("appointment_id = ?", appointmentID).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

// FindByAppointmentIDs loads the prescriptions of many appointments in one query,
// keyed by appointment id. Appointments without a prescription have no entry.
func (r *prescriptionRepository) FindByAppointmentIDs(db *gorm.DB, appointmentIDs []uuid.UUID) (map[uuid.UUID]entity.Prescription, error) {
	result := make(map[uuid.UUID]entity.Prescription, len(appointmentIDs))
	if len(appointmentIDs) == 0 {
		return result, nil
	}

	var prescriptions []entity.Prescription
	if err := db.Where("appointment_id IN ?", appointmentIDs).Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	for _, prescription := range prescriptions {
		result[prescription.AppointmentID] = prescription
	}
	return result, nil
}

func (r *prescriptionRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("created_at ASC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) FindBilledByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Select("id", "bill").
		Where("patient_id = ? AND bill IS NOT NULL", patientID).
		Order("created_at ASC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}
