package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a roster entry of a hospital. Position keeps insertion order.
type Doctor struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID  uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_doctor_roster_position,priority:1" json:"hospital_id"`
	Position    int            `gorm:"not null;uniqueIndex:idx_doctor_roster_position,priority:2" json:"position"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Department  string         `gorm:"type:varchar(100);not null;index" json:"department"`
	Phone       string         `gorm:"type:varchar(30);not null" json:"phone"`
	OPDSchedule WeeklySchedule `gorm:"column:opd_schedule;type:jsonb;not null" json:"opd_schedule"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Hospital *HospitalProfile `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
