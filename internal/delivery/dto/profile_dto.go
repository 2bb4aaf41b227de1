package dto

import (
	"time"

	"github.com/google/uuid"
)

// ProfileKind tags which variant of ProfileResponse is populated
type ProfileKind string

const (
	ProfileKindHospital ProfileKind = "hospital"
	ProfileKindPatient  ProfileKind = "patient"
)

// ProfileResponse is the profile of the authenticated account.
// Exactly one of Hospital and Patient is set, according to Kind.
type ProfileResponse struct {
	Kind     ProfileKind              `json:"kind"`
	Hospital *HospitalProfileResponse `json:"hospital,omitempty"`
	Patient  *PatientProfileResponse  `json:"patient,omitempty"`
}

type AddressResponse struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
}

type HospitalProfileResponse struct {
	ID                uuid.UUID             `json:"id"`
	Name              string                `json:"name"`
	Email             string                `json:"email"`
	Phone             string                `json:"phone,omitempty"`
	Address           AddressResponse       `json:"address"`
	Departments       []string              `json:"departments"`
	AvailableServices []string              `json:"availableServices"`
	Ratings           float64               `json:"ratings"`
	Doctors           []DoctorResponse      `json:"doctors"`
	Appointments      []AppointmentResponse `json:"appointments"`
}

type PatientProfileResponse struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone,omitempty"`
	DateOfBirth    string                `json:"dob,omitempty"`
	Gender         string                `json:"gender,omitempty"`
	MedicalHistory []string              `json:"medicalHistory"`
	Appointments   []AppointmentResponse `json:"appointments"`
}

type AppointmentResponse struct {
	ID     uuid.UUID `json:"_id"`
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
	// Counterpart is the patient name for hospitals and the hospital name for patients
	Counterpart string `json:"counterpart"`
	Status      string `json:"status"`
}
