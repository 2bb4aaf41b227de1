package repository

import (
	"context"

	"medsync/internal/domain/entity"
	domainRepo "medsync/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit("Hospital").Create(doctor).Error
}

func (r *doctorRepository) FindByHospitalID(ctx context.Context, db *gorm.DB, hospitalID uuid.UUID) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.WithContext(ctx).Where("hospital_id = ?", hospitalID).Order("position ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) CountByDepartment(ctx context.Context, db *gorm.DB, hospitalID uuid.UUID, department string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Doctor{}).
		Where("hospital_id = ? AND department = ?", hospitalID, department).
		Count(&count).Error
	return count, err
}

// NextPosition returns the roster position for the next appended doctor
func (r *doctorRepository) NextPosition(ctx context.Context, db *gorm.DB, hospitalID uuid.UUID) (int, error) {
	var next int
	err := db.WithContext(ctx).Model(&entity.Doctor{}).
		Select("COALESCE(MAX(position), 0) + 1").
		Where("hospital_id = ?", hospitalID).
		Scan(&next).Error
	return next, err
}
