package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type WritePrescriptionRequest struct {
	AppointmentID uuid.UUID `json:"appointmentId" validate:"required"`
	Medicines     []string  `json:"medicines" validate:"omitempty,dive,required"`
	Tests         []string  `json:"tests" validate:"omitempty,dive,required"`
	Notes         string    `json:"notes"`
}

// Response DTOs

type BillResponse struct {
	Amount       decimal.Decimal `json:"amount"`
	Medicines    []string        `json:"medicines"`
	Tests        []string        `json:"tests"`
	OtherCharges decimal.Decimal `json:"otherCharges"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID       `json:"id"`
	AppointmentID uuid.UUID       `json:"appointmentId"`
	DoctorID      *uuid.UUID      `json:"doctorId"`
	PatientID     uuid.UUID       `json:"patientId"`
	Doctor        *PersonResponse `json:"doctor,omitempty"`
	Medicines     []string        `json:"medicines"`
	Tests         []string        `json:"tests"`
	Notes         string          `json:"notes"`
	Bill          *BillResponse   `json:"bill,omitempty"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type PrescriptionSummaryResponse struct {
	Medicines []string `json:"medicines"`
	Tests     []string `json:"tests"`
	Notes     string   `json:"notes"`
}

type PatientBillResponse struct {
	PrescriptionID uuid.UUID    `json:"prescriptionId"`
	Bill           BillResponse `json:"bill"`
}
