package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDoctorIdentityMismatch is returned when a doctor row would not share its user's id
var ErrDoctorIdentityMismatch = errors.New("doctor id must equal its user id")

// Doctor is the doctor-specific record of a User. The two share one identity:
// Doctor.ID == Doctor.UserID, and UserID is a unique foreign key to users.
type Doctor struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	LicenseNumber  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"licenseNumber"`
	Approved       bool      `gorm:"not null;index" json:"approved"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	User           *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	AvailableSlots []Slot `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"availableSlots"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = d.UserID
	}
	if d.UserID == uuid.Nil {
		d.UserID = d.ID
	}
	if d.ID == uuid.Nil || d.ID != d.UserID {
		return ErrDoctorIdentityMismatch
	}
	return nil
}

// DisplayName resolves the doctor's name through the linked user
func (d *Doctor) DisplayName() string {
	if d.User == nil || d.User.Name == "" {
		return "Unknown"
	}
	return d.User.Name
}

// FreeSlots returns the unbooked slots in ledger order
func (d *Doctor) FreeSlots() []Slot {
	free := make([]Slot, 0, len(d.AvailableSlots))
	for _, slot := range d.AvailableSlots {
		if !slot.IsBooked {
			free = append(free, slot)
		}
	}
	return free
}
