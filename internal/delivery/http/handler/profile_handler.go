package handler

import (
	"encoding/json"
	"net/http"

	"medsync/internal/delivery/dto"
	"medsync/internal/delivery/http/middleware"
	"medsync/internal/usecase"
	"medsync/pkg/response"
	"medsync/pkg/validator"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase, validator *validator.CustomValidator) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
	}
}

// GetProfile returns the profile of the authenticated account
// @Summary Get profile
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	profile, err := h.profileUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound, usecase.ErrProfileNotFound, usecase.ErrHospitalNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

// AppendDoctor adds a doctor to the hospital roster
// @Summary Append doctor
// @Description Append a doctor to the authenticated hospital's roster and return the updated profile
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AppendDoctorRequest true "Append Doctor Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /profile/doctors [post]
func (h *ProfileHandler) AppendDoctor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.AppendDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.profileUsecase.AppendDoctor(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrForeignRoster:
			response.Forbidden(w, err.Error())
		case usecase.ErrHospitalNotFound:
			response.NotFound(w, err.Error())
		case usecase.ErrDepartmentNotOffered:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDepartmentAtCapacity, usecase.ErrRosterConflict:
			response.Error(w, http.StatusConflict, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to add doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor added successfully", profile)
}

// ListDoctors returns the roster of the authenticated hospital
// @Summary List doctors
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /profile/doctors [get]
func (h *ProfileHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctors, err := h.profileUsecase.ListDoctors(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}
