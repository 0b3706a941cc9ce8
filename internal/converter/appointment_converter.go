package converter

import (
	"hospital-appointment-service/internal/delivery/dto"
	"hospital-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Patient and doctor are included when they were preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		DoctorID:    appointment.DoctorID,
		Date:        appointment.Date,
		Time:        appointment.Time,
		Age:         appointment.Age,
		Gender:      appointment.Gender,
		Phone:       appointment.Phone,
		Reason:      appointment.Reason,
		Status:      string(appointment.Status),
		CheckedInAt: appointment.CheckedInAt,
		CompletedAt: appointment.CompletedAt,
		CreatedAt:   appointment.CreatedAt,
	}

	if appointment.Patient != nil {
		response.Patient = &dto.PersonResponse{
			ID:   appointment.Patient.ID,
			Name: appointment.Patient.Name,
		}
	}

	if appointment.Doctor != nil && appointment.Doctor.ID != uuid.Nil {
		response.Doctor = &dto.AppointmentDoctorResponse{
			ID:             appointment.Doctor.ID,
			UserID:         appointment.Doctor.UserID,
			Name:           appointment.Doctor.DisplayName(),
			Specialization: appointment.Doctor.Specialization,
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// CompletedAppointmentsToResponses attaches each appointment's prescription summary, or nil
func CompletedAppointmentsToResponses(appointments []entity.Appointment, prescriptions map[uuid.UUID]entity.Prescription) []dto.CompletedAppointmentResponse {
	responses := make([]dto.CompletedAppointmentResponse, len(appointments))
	for i := range appointments {
		response := dto.CompletedAppointmentResponse{
			AppointmentResponse: *AppointmentToResponse(&appointments[i]),
		}
		if prescription, ok := prescriptions[appointments[i].ID]; ok {
			response.Prescription = PrescriptionToSummary(&prescription)
		}
		responses[i] = response
	}
	return responses
}
