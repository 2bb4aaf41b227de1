package converter

import (
	"medsync/internal/delivery/dto"
	"medsync/internal/domain/entity"
	"medsync/internal/roster"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	schedule := doctor.OPDSchedule.Normalize()
	return &dto.DoctorResponse{
		ID:           doctor.ID,
		Name:         doctor.Name,
		Department:   doctor.Department,
		Phone:        doctor.Phone,
		OPDSchedule:  schedule,
		Availability: roster.FormatAvailability(schedule).String(),
		CreatedAt:    doctor.CreatedAt,
	}
}

// DoctorsToResponses keeps roster order
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
