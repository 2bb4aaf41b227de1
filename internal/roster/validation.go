package roster

import (
	"strings"

	"medsync/internal/domain/entity"
)

// ValidationKind identifies which draft rule failed
type ValidationKind string

const (
	KindNameRequired       ValidationKind = "name-required"
	KindDepartmentRequired ValidationKind = "department-required"
	KindPhoneRequired      ValidationKind = "phone-required"
	KindScheduleEmpty      ValidationKind = "schedule-empty"
)

var validationMessages = map[ValidationKind]string{
	KindNameRequired:       "name required",
	KindDepartmentRequired: "department required",
	KindPhoneRequired:      "phone required",
	KindScheduleEmpty:      "at least one day required",
}

// ValidationError is a local draft rule violation. It is always recoverable.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	return validationMessages[e.Kind]
}

// Validate checks d in a fixed order and reports the first violated rule
func Validate(d Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Kind: KindNameRequired}
	}
	if !entity.IsDepartment(d.Department) {
		return &ValidationError{Kind: KindDepartmentRequired}
	}
	if strings.TrimSpace(d.Phone) == "" {
		return &ValidationError{Kind: KindPhoneRequired}
	}
	if !d.Schedule.HasAvailability() {
		return &ValidationError{Kind: KindScheduleEmpty}
	}
	return nil
}
