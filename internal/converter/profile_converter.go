package converter

import (
	"medsync/internal/delivery/dto"
	"medsync/internal/domain/entity"
)

// HospitalProfileToResponse converts a hospital profile with its roster and
// appointments into the wire snapshot
func HospitalProfileToResponse(profile *entity.HospitalProfile) *dto.HospitalProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.HospitalProfileResponse{
		ID:    profile.UserID,
		Name:  profile.User.Name,
		Email: profile.User.Email,
		Phone: profile.User.Phone,
		Address: dto.AddressResponse{
			Street: profile.Street,
			City:   profile.City,
			State:  profile.State,
		},
		Departments:       nonNilStrings(profile.Departments),
		AvailableServices: nonNilStrings(profile.AvailableServices),
		Ratings:           profile.Rating,
		Doctors:           DoctorsToResponses(profile.Doctors),
		Appointments:      AppointmentsToResponses(profile.Appointments, true),
	}
}

// PatientProfileToResponse converts a patient profile into the wire snapshot
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PatientProfileResponse{
		ID:             profile.UserID,
		Name:           profile.User.Name,
		Email:          profile.User.Email,
		Phone:          profile.User.Phone,
		Gender:         profile.Gender,
		MedicalHistory: nonNilStrings(profile.MedicalHistory),
		Appointments:   AppointmentsToResponses(profile.Appointments, false),
	}
	if profile.DateOfBirth != nil {
		response.DateOfBirth = profile.DateOfBirth.Format("2006-01-02")
	}
	return response
}

// AppointmentsToResponses names the patient for hospital views and the
// hospital for patient views
func AppointmentsToResponses(appointments []entity.Appointment, hospitalView bool) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, a := range appointments {
		counterpart := "N/A"
		if hospitalView && a.Patient != nil {
			counterpart = a.Patient.Name
		}
		if !hospitalView && a.Hospital != nil {
			counterpart = a.Hospital.Name
		}
		responses[i] = dto.AppointmentResponse{
			ID:          a.ID,
			Date:        a.Date,
			Reason:      a.Reason,
			Counterpart: counterpart,
			Status:      string(a.Status),
		}
	}
	return responses
}

func nonNilStrings(list entity.StringList) []string {
	if list == nil {
		return []string{}
	}
	return []string(list)
}
