package dto

import (
	"github.com/google/uuid"
)

// Response DTOs

// DoctorResponse is a directory entry, with the name resolved from the linked user
type DoctorResponse struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"userId"`
	Name           string         `json:"name"`
	Specialization string         `json:"specialization"`
	LicenseNumber  string         `json:"licenseNumber"`
	Approved       bool           `json:"approved"`
	AvailableSlots []SlotResponse `json:"availableSlots"`
}

// DoctorAccountResponse is the receptionist view of a doctor joined to its user
type DoctorAccountResponse struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"userId"`
	Specialization string         `json:"specialization"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Role           string         `json:"role"`
	AvailableSlots []SlotResponse `json:"availableSlots,omitempty"`
}
