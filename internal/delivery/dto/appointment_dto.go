package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID uuid.UUID `json:"patientId" validate:"required"`
	DoctorID  uuid.UUID `json:"doctorId" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string    `json:"time" validate:"required,datetime=15:04"`
	Age       int       `json:"age" validate:"gte=0,lte=150"`
	Gender    string    `json:"gender" validate:"omitempty,max=20"`
	Reason    string    `json:"reason" validate:"omitempty,max=1000"`
	Phone     string    `json:"phone" validate:"omitempty,max=30"`
}

// CheckoutRequest leaves presence checks of billAmount and medicines to the usecase
type CheckoutRequest struct {
	BillAmount   *decimal.Decimal `json:"billAmount"`
	Medicines    []string         `json:"medicines"`
	Tests        []string         `json:"tests"`
	OtherCharges *decimal.Decimal `json:"otherCharges"`
	Notes        string           `json:"notes"`
}

// Response DTOs

type PersonResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type AppointmentDoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
}

type AppointmentResponse struct {
	ID          uuid.UUID                  `json:"id"`
	PatientID   uuid.UUID                  `json:"patientId"`
	DoctorID    *uuid.UUID                 `json:"doctorId"`
	Date        string                     `json:"date"`
	Time        string                     `json:"time"`
	Age         int                        `json:"age"`
	Gender      string                     `json:"gender"`
	Phone       string                     `json:"phone"`
	Reason      string                     `json:"reason"`
	Status      string                     `json:"status"`
	CheckedInAt *time.Time                 `json:"checkedInAt,omitempty"`
	CompletedAt *time.Time                 `json:"completedAt,omitempty"`
	CreatedAt   time.Time                  `json:"createdAt"`
	Patient     *PersonResponse            `json:"patient,omitempty"`
	Doctor      *AppointmentDoctorResponse `json:"doctor,omitempty"`
}

// CompletedAppointmentResponse always carries the prescription key, null when none exists
type CompletedAppointmentResponse struct {
	AppointmentResponse
	Prescription *PrescriptionSummaryResponse `json:"prescription"`
}

type CheckoutResponse struct {
	Prescription *PrescriptionResponse `json:"prescription"`
	Appointment  *AppointmentResponse  `json:"appointment"`
}
