package repository

import (
	"context"
	"errors"

	"medsync/internal/domain/entity"
	domainRepo "medsync/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type hospitalProfileRepository struct{}

func NewHospitalProfileRepository() domainRepo.HospitalProfileRepository {
	return &hospitalProfileRepository{}
}

func (r *hospitalProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.HospitalProfile, error) {
	var profile entity.HospitalProfile
	err := db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *hospitalProfileRepository) LockByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.HospitalProfile, error) {
	var profile entity.HospitalProfile
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
