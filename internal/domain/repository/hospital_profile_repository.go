package repository

import (
	"context"

	"medsync/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HospitalProfileRepository interface {
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.HospitalProfile, error)
	// LockByUserID loads the profile with a row lock for the rest of the transaction
	LockByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.HospitalProfile, error)
}
