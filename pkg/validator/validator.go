package validator

import (
	"strings"

	"medsync/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Registration only fails on programmer error (empty tag or nil func)
	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("department", validateDepartment)
	_ = v.RegisterValidation("opd_schedule", validateOPDSchedule)

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required", "notblank":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "department":
				errors[field] = field + " must be one of: " + strings.Join(entity.Departments, ", ")
			case "opd_schedule":
				errors[field] = "at least one day required"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateDepartment(fl validator.FieldLevel) bool {
	return entity.IsDepartment(fl.Field().String())
}

// validateOPDSchedule requires at least one available day and only enumerated slots
func validateOPDSchedule(fl validator.FieldLevel) bool {
	schedule, ok := fl.Field().Interface().(entity.WeeklySchedule)
	if !ok || !schedule.HasAvailability() {
		return false
	}
	for _, slot := range schedule.Normalize() {
		if !entity.IsOPDSlot(slot) {
			return false
		}
	}
	return true
}
