package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is the flat billing breakdown recorded at checkout
type Bill struct {
	Amount       decimal.Decimal `json:"amount"`
	Medicines    []string        `json:"medicines"`
	Tests        []string        `json:"tests"`
	OtherCharges decimal.Decimal `json:"otherCharges"`
}

// NewBill applies the defaults for omitted parts of a bill
func NewBill(amount decimal.Decimal, medicines, tests []string, otherCharges *decimal.Decimal) *Bill {
	bill := &Bill{
		Amount:       amount,
		Medicines:    medicines,
		Tests:        tests,
		OtherCharges: decimal.Zero,
	}
	if bill.Medicines == nil {
		bill.Medicines = []string{}
	}
	if bill.Tests == nil {
		bill.Tests = []string{}
	}
	if otherCharges != nil {
		bill.OtherCharges = *otherCharges
	}
	return bill
}

// Prescription is the clinical and billing record of an appointment. It is kept
// when the appointment is cancelled, so AppointmentID carries no foreign key.
type Prescription struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"appointmentId"`
	DoctorID      *uuid.UUID `gorm:"type:uuid;index" json:"doctorId"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patientId"`
	Medicines     []string   `gorm:"serializer:json" json:"medicines"`
	Tests         []string   `gorm:"serializer:json" json:"tests"`
	Notes         string     `gorm:"type:text" json:"notes"`
	Bill          *Bill      `gorm:"serializer:json" json:"bill,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:DoctorID;constraint:OnDelete:SET NULL" json:"doctor,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HasBill reports whether checkout has recorded a bill
func (p *Prescription) HasBill() bool {
	return p.Bill != nil
}
