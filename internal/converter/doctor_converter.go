package converter

import (
	"hospital-appointment-service/internal/delivery/dto"
	"hospital-appointment-service/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		UserID:         doctor.UserID,
		Name:           doctor.DisplayName(),
		Specialization: doctor.Specialization,
		LicenseNumber:  doctor.LicenseNumber,
		Approved:       doctor.Approved,
		AvailableSlots: SlotsToResponses(doctor.AvailableSlots),
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorsToAccountResponses joins each doctor with its user. Slots are included
// only when requested.
func DoctorsToAccountResponses(doctors []entity.Doctor, withSlots bool) []dto.DoctorAccountResponse {
	responses := make([]dto.DoctorAccountResponse, len(doctors))
	for i, doctor := range doctors {
		response := dto.DoctorAccountResponse{
			ID:             doctor.ID,
			UserID:         doctor.UserID,
			Specialization: doctor.Specialization,
			Name:           doctor.DisplayName(),
		}
		if doctor.User != nil {
			response.Email = doctor.User.Email
			response.Role = string(doctor.User.Role)
		}
		if withSlots {
			response.AvailableSlots = SlotsToResponses(doctor.AvailableSlots)
		}
		responses[i] = response
	}
	return responses
}
