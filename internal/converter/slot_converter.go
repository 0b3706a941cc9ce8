package converter

import (
	"hospital-appointment-service/internal/delivery/dto"
	"hospital-appointment-service/internal/domain/entity"
)

// SlotsToResponses converts a slice of Slot entities to slice of SlotResponse DTOs
func SlotsToResponses(slots []entity.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{
			ID:       slot.ID,
			Date:     slot.Date,
			Time:     slot.Time,
			IsBooked: slot.IsBooked,
		}
	}
	return responses
}
