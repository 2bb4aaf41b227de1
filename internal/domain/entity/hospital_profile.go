package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// HospitalProfile represents hospital-specific profile data
type HospitalProfile struct {
	UserID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Street            string     `gorm:"type:varchar(255)" json:"street,omitempty"`
	City              string     `gorm:"type:varchar(100);index" json:"city,omitempty"`
	State             string     `gorm:"type:varchar(100)" json:"state,omitempty"`
	Departments       StringList `gorm:"type:jsonb" json:"departments"`
	AvailableServices StringList `gorm:"type:jsonb" json:"available_services"`
	Rating            float64    `gorm:"type:numeric(2,1);default:0" json:"rating"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Doctors      []Doctor      `gorm:"foreignKey:HospitalID" json:"doctors,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:HospitalID" json:"appointments,omitempty"`
}

func (HospitalProfile) TableName() string {
	return "hospital_profiles"
}

// OffersDepartment reports whether a doctor may join the given department.
// Hospitals without a declared department list accept any department.
func (h *HospitalProfile) OffersDepartment(department string) bool {
	if len(h.Departments) == 0 {
		return true
	}
	for _, d := range h.Departments {
		if d == department {
			return true
		}
	}
	return false
}

// StringList type for GORM JSONB string arrays
type StringList []string

// Value returns json value, implement driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// Scan scan value into StringList, implements sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result []string
	err := json.Unmarshal(bytes, &result)
	*l = StringList(result)
	return err
}
