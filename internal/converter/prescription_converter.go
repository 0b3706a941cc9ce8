package converter

import (
	"hospital-appointment-service/internal/delivery/dto"
	"hospital-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

// BillToResponse converts a Bill to BillResponse DTO
func BillToResponse(bill *entity.Bill) *dto.BillResponse {
	if bill == nil {
		return nil
	}

	return &dto.BillResponse{
		Amount:       bill.Amount,
		Medicines:    nonNil(bill.Medicines),
		Tests:        nonNil(bill.Tests),
		OtherCharges: bill.OtherCharges,
	}
}

// PrescriptionToResponse converts a Prescription entity to PrescriptionResponse DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:            prescription.ID,
		AppointmentID: prescription.AppointmentID,
		DoctorID:      prescription.DoctorID,
		PatientID:     prescription.PatientID,
		Medicines:     nonNil(prescription.Medicines),
		Tests:         nonNil(prescription.Tests),
		Notes:         prescription.Notes,
		Bill:          BillToResponse(prescription.Bill),
		CompletedAt:   prescription.CompletedAt,
		CreatedAt:     prescription.CreatedAt,
	}

	if prescription.Doctor != nil && prescription.Doctor.ID != uuid.Nil {
		response.Doctor = &dto.PersonResponse{
			ID:   prescription.Doctor.ID,
			Name: prescription.Doctor.DisplayName(),
		}
	}

	return response
}

// PrescriptionsToResponses converts a slice of Prescription entities to slice of PrescriptionResponse DTOs
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}

// PrescriptionToSummary keeps only the clinical part of a prescription
func PrescriptionToSummary(prescription *entity.Prescription) *dto.PrescriptionSummaryResponse {
	if prescription == nil {
		return nil
	}

	return &dto.PrescriptionSummaryResponse{
		Medicines: nonNil(prescription.Medicines),
		Tests:     nonNil(prescription.Tests),
		Notes:     prescription.Notes,
	}
}

// PrescriptionsToBills projects billed prescriptions to {prescriptionId, bill}.
// Prescriptions without a bill are skipped.
func PrescriptionsToBills(prescriptions []entity.Prescription) []dto.PatientBillResponse {
	responses := make([]dto.PatientBillResponse, 0, len(prescriptions))
	for _, prescription := range prescriptions {
		if !prescription.HasBill() {
			continue
		}
		responses = append(responses, dto.PatientBillResponse{
			PrescriptionID: prescription.ID,
			Bill:           *BillToResponse(prescription.Bill),
		})
	}
	return responses
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
