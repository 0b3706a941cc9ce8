package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCheckedIn AppointmentStatus = "checked-in"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a patient booking with a doctor.
// Cancelling deletes the row; there is no cancelled status.
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patientId"`
	DoctorID    *uuid.UUID        `gorm:"type:uuid;index" json:"doctorId"`
	SlotID      *int64            `gorm:"index" json:"slotId,omitempty"`
	Date        string            `gorm:"type:varchar(10)" json:"date"`
	Time        string            `gorm:"type:varchar(5)" json:"time"`
	Age         int               `json:"age"`
	Gender      string            `gorm:"type:varchar(20)" json:"gender"`
	Phone       string            `gorm:"type:varchar(30)" json:"phone"`
	Reason      string            `gorm:"type:text" json:"reason"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CheckedInAt *time.Time        `json:"checkedInAt,omitempty"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Patient *User   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Doctor  *Doctor `gorm:"foreignKey:DoctorID;constraint:OnDelete:SET NULL" json:"doctor,omitempty"`
	Slot    *Slot   `gorm:"foreignKey:SlotID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// CanRestoreSlot reports whether cancelling can hand the time back to the doctor
func (a *Appointment) CanRestoreSlot() bool {
	return a.DoctorID != nil && *a.DoctorID != uuid.Nil && a.Date != "" && a.Time != ""
}
