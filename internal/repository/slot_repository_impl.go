package repository

import (
	"errors"

	"hospital-appointment-service/internal/domain/entity"
	domainRepo "hospital-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) CreateBatch(db *gorm.DB, slots []entity.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	return db.Create(&slots).Error
}

func (r *slotRepository) FindByID(db *gorm.DB, id int64) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindFreeByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.Where("doctor_id = ? AND is_booked = ?", doctorID, false).
		Order("id ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// FindByDoctorAndTime returns every slot, booked or not, at the given date and time
func (r *slotRepository) FindByDoctorAndTime(db *gorm.DB, doctorID uuid.UUID, date, clock string) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.Where("doctor_id = ? AND date = ? AND time = ?", doctorID, date, clock).
		Order("id ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// MarkBooked books the slot ONLY if it is still free.
// Returns affected rows: 1 = booked, 0 = someone else booked it first.
func (r *slotRepository) MarkBooked(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ? AND is_booked = ?", id, false).
		Update("is_booked", true)
	return result.RowsAffected, result.Error
}

// Release frees a booked slot. Returns 0 when the slot is gone or already free.
func (r *slotRepository) Release(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ? AND is_booked = ?", id, true).
		Update("is_booked", false)
	return result.RowsAffected, result.Error
}
