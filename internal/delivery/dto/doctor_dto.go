package dto

import (
	"time"

	"medsync/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

// DoctorDraftRequest is a doctor as composed by the roster editor
type DoctorDraftRequest struct {
	Name        string                `json:"name" validate:"required,notblank"`
	Department  string                `json:"department" validate:"required,department"`
	Phone       string                `json:"phone" validate:"required,notblank,max=30"`
	OPDSchedule entity.WeeklySchedule `json:"opdSchedule" validate:"opd_schedule"`
}

// AppendDoctorRequest appends one doctor to the roster of hospital ID
type AppendDoctorRequest struct {
	ID     uuid.UUID          `json:"id" validate:"required"`
	Doctor DoctorDraftRequest `json:"doctor" validate:"required"`
}

// Response DTOs

type DoctorResponse struct {
	ID           uuid.UUID             `json:"_id"`
	Name         string                `json:"name"`
	Department   string                `json:"department"`
	Phone        string                `json:"phone"`
	OPDSchedule  entity.WeeklySchedule `json:"opdSchedule"`
	Availability string                `json:"availability,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
