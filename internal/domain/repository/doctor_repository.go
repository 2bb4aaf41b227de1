package repository

import (
	"context"

	"medsync/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByHospitalID(ctx context.Context, db *gorm.DB, hospitalID uuid.UUID) ([]entity.Doctor, error)
	CountByDepartment(ctx context.Context, db *gorm.DB, hospitalID uuid.UUID, department string) (int64, error)
	NextPosition(ctx context.Context, db *gorm.DB, hospitalID uuid.UUID) (int, error)
}
