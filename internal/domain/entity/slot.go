package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SlotDateLayout = "2006-01-02"
	SlotTimeLayout = "15:04"
)

// Slot is a bookable (date, time) entry of a doctor's calendar.
// The auto-increment ID gives the ledger its order.
type Slot struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_doctor_slots_lookup,priority:1" json:"doctorId"`
	Date      string    `gorm:"type:varchar(10);not null;index:idx_doctor_slots_lookup,priority:2" json:"date"`
	Time      string    `gorm:"type:varchar(5);not null;index:idx_doctor_slots_lookup,priority:3" json:"time"`
	IsBooked  bool      `gorm:"not null" json:"isBooked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Slot) TableName() string {
	return "doctor_slots"
}

// Matches reports whether the slot sits at the given date and time
func (s *Slot) Matches(date, clock string) bool {
	return s.Date == date && s.Time == clock
}
