package roster

import (
	"medsync/internal/domain/entity"
)

// Field names a scalar field of a Draft
type Field string

const (
	FieldName       Field = "name"
	FieldDepartment Field = "department"
	FieldPhone      Field = "phone"
)

// Draft is the unpersisted doctor being composed in the editor
type Draft struct {
	Name       string
	Department string
	Phone      string
	Schedule   entity.WeeklySchedule
}

func emptyDraft() Draft {
	return Draft{Schedule: entity.WeeklySchedule{}}
}

// Clone returns a copy that shares no state with d
func (d Draft) Clone() Draft {
	out := d
	out.Schedule = d.Schedule.Clone()
	if out.Schedule == nil {
		out.Schedule = entity.WeeklySchedule{}
	}
	return out
}

// IsEmpty reports whether no field has been filled in
func (d Draft) IsEmpty() bool {
	return d.Name == "" && d.Department == "" && d.Phone == "" && len(d.Schedule) == 0
}

func (d *Draft) set(field Field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldDepartment:
		d.Department = value
	case FieldPhone:
		d.Phone = value
	default:
		return ErrUnknownField
	}
	return nil
}
