package repository

import (
	"errors"

	"hospital-appointment-service/internal/domain/entity"
	domainRepo "hospital-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("User", "AvailableSlots").Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("User").Preload("AvailableSlots", orderSlots).
		Where("id = ?", id).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// FindApprovedBySpecialization returns approved doctors that are linked to a user
func (r *doctorRepository) FindApprovedBySpecialization(db *gorm.DB, specialization string) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Preload("User").Preload("AvailableSlots", orderSlots).
		Where("specialization = ? AND approved = ? AND user_id IS NOT NULL", specialization, true).
		Order("created_at ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByApproval(db *gorm.DB, approved bool, withSlots bool) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	query := db.Preload("User")
	if withSlots {
		query = query.Preload("AvailableSlots", orderSlots)
	}
	err := query.Where("approved = ?", approved).Order("created_at ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// Approve sets approved=true. Approving an approved doctor still matches the row,
// so the affected count only reports whether the doctor exists.
func (r *doctorRepository) Approve(db *gorm.DB, id uuid.UUID) (int64, error) {
	var count int64
	if err := db.Model(&entity.Doctor{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	result := db.Model(&entity.Doctor{}).Where("id = ?", id).Update("approved", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func orderSlots(db *gorm.DB) *gorm.DB {
	return db.Order("doctor_slots.id ASC")
}
